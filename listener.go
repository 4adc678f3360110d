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
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/panjf2000/mockpoll/pkg/logging"
)

const (
	// DefaultRemoteHost is the host of the peer addresses returned by Accept.
	DefaultRemoteHost = "localhost"
	// DefaultRemotePortBase is the port just below the first peer port returned by Accept.
	DefaultRemotePortBase = 57000
)

// ListenerState is the lifecycle state of a Listener.
type ListenerState int

const (
	// StateUnbound is the state of a freshly created Listener.
	StateUnbound ListenerState = iota
	// StateBound is reached by Bind.
	StateBound
	// StateListening is reached by Listen.
	StateListening
	// StateClosed is reached by Close.
	StateClosed
)

func (st ListenerState) String() string {
	switch st {
	case StateUnbound:
		return "unbound"
	case StateBound:
		return "bound"
	case StateListening:
		return "listening"
	case StateClosed:
		return "closed"
	}
	return "ListenerState(" + strconv.Itoa(int(st)) + ")"
}

// Addr is a synthesized TCP peer address.
type Addr struct {
	Host string
	Port int
}

// Network returns "tcp".
func (a *Addr) Network() string {
	return "tcp"
}

func (a *Addr) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Listener is a scripted listening socket.
//
// It enforces bind -> listen -> accept... -> close, failing every call made out of
// order with an *os.SyscallError the way a real socket would. Accept hands out the
// sockets given to NewListener in order, then fresh empty sockets.
type Listener struct {
	fd       int
	state    ListenerState
	accepted []*Socket
	current  int
	addr     string
	backlog  int
	host     string
	port     int
	opts     []Option
	logger   logging.Logger
}

// NewListener creates a Listener whose Accept returns accepted first.
func NewListener(accepted []*Socket, opts ...Option) *Listener {
	options := loadOptions(opts...)
	return &Listener{
		fd:       options.Generator.Next(),
		accepted: accepted,
		host:     options.RemoteHost,
		port:     options.RemotePortBase,
		opts:     []Option{WithLogger(options.Logger), WithGenerator(options.Generator)},
		logger:   options.Logger,
	}
}

// Fd returns the descriptor of the listener.
func (ln *Listener) Fd() int {
	return ln.fd
}

// State returns the current lifecycle state.
func (ln *Listener) State() ListenerState {
	return ln.state
}

// Addr returns the address given to the last successful Bind.
func (ln *Listener) Addr() string {
	return ln.addr
}

// Backlog returns the backlog given to Listen.
func (ln *Listener) Backlog() int {
	return ln.backlog
}

// Accepted tells how many connections have been accepted so far.
func (ln *Listener) Accepted() int {
	return ln.current
}

func (ln *Listener) check(op string, valid ...ListenerState) error {
	for _, st := range valid {
		if ln.state == st {
			return nil
		}
	}
	errno := errnoInvalid
	if ln.state == StateClosed {
		errno = errnoBadFd
	}
	ln.logger.Debugf("listener(fd=%d): %s rejected in state %s", ln.fd, op, ln.state)
	return os.NewSyscallError(op, errno)
}

// Bind moves an unbound or bound listener to StateBound.
func (ln *Listener) Bind(addr string) error {
	if err := ln.check("bind", StateUnbound, StateBound); err != nil {
		return err
	}
	ln.addr, ln.state = addr, StateBound
	ln.logger.Debugf("listener(fd=%d): bound to %s", ln.fd, addr)
	return nil
}

// Listen moves a bound listener to StateListening.
func (ln *Listener) Listen(backlog int) error {
	if err := ln.check("listen", StateBound); err != nil {
		return err
	}
	ln.backlog, ln.state = backlog, StateListening
	ln.logger.Debugf("listener(fd=%d): listening on %s, backlog %d", ln.fd, ln.addr, backlog)
	return nil
}

// Accept returns the next scripted connection along with a new peer address.
// The connection is always a non-nil *Socket, nil entries of the scripted
// list are replaced by fresh empty sockets.
func (ln *Listener) Accept() (Conn, net.Addr, error) {
	if err := ln.check("accept", StateListening); err != nil {
		return nil, nil, err
	}
	var c *Socket
	if ln.current < len(ln.accepted) {
		c = ln.accepted[ln.current]
	}
	if c == nil {
		c = NewSocket(nil, ln.opts...)
	}
	ln.current++
	ln.port++
	addr := &Addr{Host: ln.host, Port: ln.port}
	ln.logger.Debugf("listener(fd=%d): accepted %s from %s", ln.fd, c, addr)
	return c, addr, nil
}

// Close moves the listener to StateClosed, it never fails.
func (ln *Listener) Close() error {
	ln.state = StateClosed
	ln.logger.Debugf("listener(fd=%d): closed", ln.fd)
	return nil
}

func (ln *Listener) String() string {
	return fmt.Sprintf("listener(fd=%d)", ln.fd)
}
