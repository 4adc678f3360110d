// Copyright (c) 2026 The Gnet Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mockpoll

import (
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panjf2000/mockpoll/pkg/fdgen"
)

func assertSyscallError(t *testing.T, err error, syscallName string, errno error) {
	t.Helper()
	var se *os.SyscallError
	require.True(t, errors.As(err, &se), "expect *os.SyscallError but got %v", err)
	assert.Equal(t, syscallName, se.Syscall)
	assert.True(t, errors.Is(err, errno), "expect %v but got %v", errno, err)
}

func TestListener_StateMachine(t *testing.T) {
	t.Run("listen-before-bind", func(t *testing.T) {
		ln := NewListener(nil)
		assertSyscallError(t, ln.Listen(5), "listen", syscall.EINVAL)
		assert.Equal(t, StateUnbound, ln.State())
	})
	t.Run("accept-before-listen", func(t *testing.T) {
		ln := NewListener(nil)
		_, _, err := ln.Accept()
		assertSyscallError(t, err, "accept", syscall.EINVAL)
		require.NoError(t, ln.Bind("localhost:8888"))
		_, _, err = ln.Accept()
		assertSyscallError(t, err, "accept", syscall.EINVAL)
	})
	t.Run("bind-is-idempotent", func(t *testing.T) {
		ln := NewListener(nil)
		require.NoError(t, ln.Bind("localhost:8888"))
		require.NoError(t, ln.Bind("localhost:9999"))
		assert.Equal(t, StateBound, ln.State())
		assert.Equal(t, "localhost:9999", ln.Addr())
	})
	t.Run("bind-while-listening", func(t *testing.T) {
		ln := NewListener(nil)
		require.NoError(t, ln.Bind("localhost:8888"))
		require.NoError(t, ln.Listen(5))
		assertSyscallError(t, ln.Bind("localhost:8888"), "bind", syscall.EINVAL)
		assertSyscallError(t, ln.Listen(5), "listen", syscall.EINVAL)
		assert.Equal(t, StateListening, ln.State())
		assert.Equal(t, 5, ln.Backlog())
	})
	t.Run("closed", func(t *testing.T) {
		ln := NewListener(nil)
		require.NoError(t, ln.Bind("localhost:8888"))
		require.NoError(t, ln.Listen(5))
		require.NoError(t, ln.Close())
		require.NoError(t, ln.Close())
		assert.Equal(t, StateClosed, ln.State())
		assertSyscallError(t, ln.Bind("localhost:8888"), "bind", syscall.EBADF)
		assertSyscallError(t, ln.Listen(5), "listen", syscall.EBADF)
		_, _, err := ln.Accept()
		assertSyscallError(t, err, "accept", syscall.EBADF)
	})
	t.Run("close-unbound", func(t *testing.T) {
		ln := NewListener(nil)
		require.NoError(t, ln.Close())
		assert.Equal(t, StateClosed, ln.State())
	})
}

func TestListener_Accept(t *testing.T) {
	c1, c2 := NewSocket(Chunks("a")), NewSocket(Chunks("b"))
	ln := NewListener([]*Socket{c1, c2})
	require.NoError(t, ln.Bind("localhost:8888"))
	require.NoError(t, ln.Listen(5))

	var (
		conns []Conn
		ports []int
	)
	for i := 0; i < 6; i++ {
		c, addr, err := ln.Accept()
		require.NoError(t, err)
		require.NotNil(t, c)
		require.IsType(t, (*Addr)(nil), addr)
		assert.Equal(t, "tcp", addr.Network())
		conns = append(conns, c)
		ports = append(ports, addr.(*Addr).Port)
	}

	assert.Same(t, c1, conns[0])
	assert.Same(t, c2, conns[1])
	prev := c2.Fd()
	for _, c := range conns[2:] {
		s, ok := c.(*Socket)
		require.True(t, ok)
		assert.NotSame(t, c1, s)
		assert.NotSame(t, c2, s)
		assert.Greater(t, s.Fd(), prev, "fresh sockets must get increasing descriptors")
		prev = s.Fd()
		data, _ := s.Recv(16)
		assert.Empty(t, data, "fresh sockets carry no data")
	}
	assert.Equal(t, DefaultRemotePortBase+1, ports[0])
	for i := 1; i < len(ports); i++ {
		assert.Greater(t, ports[i], ports[i-1])
	}
	assert.Equal(t, 6, ln.Accepted())
}

func TestListener_AcceptNilEntry(t *testing.T) {
	c := NewSocket(Chunks("x"))
	ln := NewListener([]*Socket{nil, c})
	require.NoError(t, ln.Bind(":0"))
	require.NoError(t, ln.Listen(1))

	first, _, err := ln.Accept()
	require.NoError(t, err)
	s, ok := first.(*Socket)
	require.True(t, ok)
	require.NotNil(t, s, "a nil scripted entry must be replaced by a fresh socket")
	data, err := s.Recv(8)
	require.NoError(t, err)
	assert.Empty(t, data)

	second, _, err := ln.Accept()
	require.NoError(t, err)
	assert.Same(t, c, second)
}

func TestListener_RemoteAddr(t *testing.T) {
	ln := NewListener(nil, WithRemoteAddr("10.0.0.1", 40000))
	require.NoError(t, ln.Bind(":0"))
	require.NoError(t, ln.Listen(1))
	_, addr, err := ln.Accept()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:40001", addr.String())

	ln = NewListener(nil, WithRemoteAddr("::1", 1))
	require.NoError(t, ln.Bind(":0"))
	require.NoError(t, ln.Listen(1))
	_, addr, _ = ln.Accept()
	assert.Equal(t, "[::1]:2", addr.String())
}

func TestListener_Fd(t *testing.T) {
	g := fdgen.New(500)
	ln := NewListener(nil, WithGenerator(g))
	assert.Equal(t, 500, ln.Fd())
	require.NoError(t, ln.Bind(":0"))
	require.NoError(t, ln.Listen(1))
	c, _, err := ln.Accept()
	require.NoError(t, err)
	assert.Equal(t, 501, c.Fd(), "fabricated sockets share the listener's generator")
	assert.Equal(t, "listener(fd=500)", ln.String())
}

func TestListenerState_String(t *testing.T) {
	assert.Equal(t, "unbound", StateUnbound.String())
	assert.Equal(t, "bound", StateBound.String())
	assert.Equal(t, "listening", StateListening.String())
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "ListenerState(7)", ListenerState(7).String())
}
