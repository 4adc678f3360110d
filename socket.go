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
	"io"

	"github.com/eapache/queue"
	"github.com/valyala/bytebufferpool"

	"github.com/panjf2000/mockpoll/pkg/logging"
)

// Chunk is one scripted piece of inbound data of a Socket. It either holds
// bytes or a producer that is invoked when the chunk is first consumed.
type Chunk struct {
	data    []byte
	produce func() []byte
}

// Bytes returns a Chunk holding b.
func Bytes(b []byte) Chunk {
	return Chunk{data: b}
}

// String returns a Chunk holding s.
func String(s string) Chunk {
	return Chunk{data: []byte(s)}
}

// Produce returns a Chunk whose data is whatever fn returns. fn is called
// exactly once, when a Recv reaches the chunk, which lets a test trigger a side
// effect at a precise point of the stream.
func Produce(fn func() []byte) Chunk {
	return Chunk{produce: fn}
}

// Chunks turns every string into a Chunk.
func Chunks(ss ...string) []Chunk {
	chunks := make([]Chunk, len(ss))
	for i, s := range ss {
		chunks[i] = String(s)
	}
	return chunks
}

func (c Chunk) resolve() []byte {
	if c.produce != nil {
		return c.produce()
	}
	return c.data
}

// Socket is a scripted accepted connection.
//
// Recv hands out the scripted chunks in order, splitting any chunk larger than
// the requested size across as many calls as needed. Once the script is used up
// Recv returns empty data forever, which event loops take as the peer having
// closed the connection. Send, Close, Shutdown and SetSockOpt are only recorded.
type Socket struct {
	Recorder

	fd     int
	chunks *queue.Queue // of Chunk
	remain []byte
	sent   bytebufferpool.ByteBuffer
	logger logging.Logger
}

// NewSocket creates a Socket that will deliver chunks.
func NewSocket(chunks []Chunk, opts ...Option) *Socket {
	options := loadOptions(opts...)
	s := &Socket{
		fd:     options.Generator.Next(),
		chunks: queue.New(),
		logger: options.Logger,
	}
	for _, c := range chunks {
		s.chunks.Add(c)
	}
	return s
}

// Fd returns the descriptor of the socket.
func (s *Socket) Fd() int {
	return s.fd
}

// Recv returns at most size bytes from the head of the remaining script.
// The returned error is always nil.
func (s *Socket) Recv(size int) ([]byte, error) {
	if size <= 0 {
		return []byte{}, nil
	}
	if len(s.remain) == 0 {
		if s.chunks.Length() == 0 {
			return []byte{}, nil
		}
		s.remain = s.chunks.Remove().(Chunk).resolve()
	}
	n := len(s.remain)
	if n > size {
		n = size
	}
	data := make([]byte, n)
	copy(data, s.remain)
	s.remain = s.remain[n:]
	s.logger.Debugf("socket(fd=%d): recv %d/%d bytes, %d chunk(s) pending", s.fd, n, size, s.Pending())
	return data, nil
}

// Read implements io.Reader on top of Recv, reporting an empty read as io.EOF.
func (s *Socket) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	data, _ := s.Recv(len(p))
	if len(data) == 0 {
		return 0, io.EOF
	}
	return copy(p, data), nil
}

// Pending tells how many chunks, including a partially consumed one, are left.
func (s *Socket) Pending() int {
	n := s.chunks.Length()
	if len(s.remain) > 0 {
		n++
	}
	return n
}

// Exhausted reports whether every scripted byte has been received.
func (s *Socket) Exhausted() bool {
	return s.Pending() == 0
}

// Send records p and pretends it has been written entirely.
func (s *Socket) Send(p []byte) (int, error) {
	s.record("Send", append([]byte(nil), p...))
	_, _ = s.sent.Write(p)
	return len(p), nil
}

// Write implements io.Writer, it is recorded as a Send.
func (s *Socket) Write(p []byte) (int, error) {
	return s.Send(p)
}

// Close is recorded and has no other effect.
func (s *Socket) Close() error {
	s.record("Close")
	s.logger.Debugf("socket(fd=%d): closed", s.fd)
	return nil
}

// Shutdown is recorded and has no other effect.
func (s *Socket) Shutdown(how int) error {
	s.record("Shutdown", how)
	return nil
}

// SetSockOpt is recorded and has no other effect.
func (s *Socket) SetSockOpt(level, opt, value int) error {
	s.record("SetSockOpt", level, opt, value)
	return nil
}

// Sent returns the payload of every Send call in order.
func (s *Socket) Sent() [][]byte {
	calls := s.Calls("Send")
	sent := make([][]byte, len(calls))
	for i, c := range calls {
		sent[i] = c.Args[0].([]byte)
	}
	return sent
}

// SentBytes returns everything sent so far as one stream.
func (s *Socket) SentBytes() []byte {
	return append([]byte(nil), s.sent.B...)
}

// Closed reports whether Close has been called.
func (s *Socket) Closed() bool {
	return s.Called("Close")
}

func (s *Socket) String() string {
	return fmt.Sprintf("socket(fd=%d)", s.fd)
}
