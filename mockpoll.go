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

/*
Package mockpoll provides a scripted stand-in for an I/O readiness poller,
along with scripted sockets and listeners, for testing event-loop servers
deterministically.

A real event loop registers sockets with a poller, blocks in Select and
reacts to whatever became ready. A Selector replays a fixed script of
readiness events instead, resolving each scripted object against its
registration table exactly the way a real poller would, so the code under
test cannot tell the difference:

	c := mockpoll.NewSocket(mockpoll.Chunks("foo", "bar"))
	ln := mockpoll.NewListener([]*mockpoll.Socket{c})
	sel := mockpoll.NewSelector([]mockpoll.Event{
		mockpoll.Single(ln),
		mockpoll.Single(c),
		mockpoll.Batch{mockpoll.Single(c), mockpoll.Tagged(c, mockpoll.EventWrite)},
	})

	err := sel.Run(func(sel *mockpoll.Selector) error {
		return server.Serve(ln, sel) // returns once the script is used up
	})

Nothing in this package touches the network or blocks, and none of it is
safe for concurrent use.
*/
package mockpoll

import (
	"net"
	"time"
)

// IOEvent is the bit mask of readiness interests.
type IOEvent uint8

const (
	// EventRead means the object is readable, or acceptable for a listener.
	EventRead IOEvent = 1 << iota
	// EventWrite means the object is writable.
	EventWrite
	// EventReadWrite combines EventRead and EventWrite.
	EventReadWrite = EventRead | EventWrite
)

// IsReadEvent checks if the event is a read event.
func IsReadEvent(event IOEvent) bool {
	return event&EventRead != 0
}

// IsWriteEvent checks if the event is a write event.
func IsWriteEvent(event IOEvent) bool {
	return event&EventWrite != 0
}

func (ev IOEvent) String() string {
	switch ev {
	case EventRead:
		return "READ"
	case EventWrite:
		return "WRITE"
	case EventReadWrite:
		return "READ|WRITE"
	case 0:
		return "NONE"
	}
	return "INVALID"
}

// FileObject is anything that can be registered with a Poller.
type FileObject interface {
	Fd() int
}

// Conn is the surface of an accepted stream socket.
type Conn interface {
	FileObject
	Recv(size int) ([]byte, error)
	Send(p []byte) (int, error)
	Close() error
}

// Acceptor is the surface of a listening socket.
type Acceptor interface {
	FileObject
	Bind(addr string) error
	Listen(backlog int) error
	Accept() (Conn, net.Addr, error)
	Close() error
}

// Poller is the surface of a readiness multiplexer.
type Poller interface {
	Register(obj FileObject, events IOEvent, data interface{}) (*Key, error)
	Modify(obj FileObject, events IOEvent, data interface{}) (*Key, error)
	Unregister(obj FileObject) (*Key, error)
	Key(obj FileObject) (*Key, error)
	Map() map[FileObject]*Key
	Select(timeout time.Duration) ([]Ready, error)
	Close() error
}

var (
	_ Conn     = (*Socket)(nil)
	_ Acceptor = (*Listener)(nil)
	_ Poller   = (*Selector)(nil)
)
