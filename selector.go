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
	"fmt"
	"reflect"
	"time"

	"github.com/eapache/queue"

	errorx "github.com/panjf2000/mockpoll/pkg/errors"
	"github.com/panjf2000/mockpoll/pkg/logging"
)

// Key is the registration of an object with a Selector.
type Key struct {
	FileObj FileObject
	Fd      int
	Events  IOEvent
	Data    interface{}
}

// Ready pairs a registration with the events a Select reported for it.
type Ready struct {
	Key    *Key
	Events IOEvent
}

// ExhaustedError is returned by Select once the script of Selector is used up.
// It matches errorx.ErrScriptExhausted with errors.Is.
type ExhaustedError struct {
	Selector *Selector
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%v (selector %p)", errorx.ErrScriptExhausted, e.Selector)
}

// Is reports whether target is errorx.ErrScriptExhausted.
func (e *ExhaustedError) Is(target error) bool {
	return target == errorx.ErrScriptExhausted
}

// Selector is a scripted readiness poller.
//
// It keeps a registration table like a real poller, but Select never waits:
// each call pops the next scripted Event and resolves its objects against the
// table. Registered objects are keyed by identity, so they must be of comparable
// types, pointers usually.
type Selector struct {
	keys              map[FileObject]*Key
	script            *queue.Queue // of []Item
	consumed          int
	emptyOnExhaustion bool
	logger            logging.Logger
}

// NewSelector creates a Selector that replays script.
func NewSelector(script []Event, opts ...Option) *Selector {
	options := loadOptions(opts...)
	s := &Selector{
		keys:              make(map[FileObject]*Key),
		script:            queue.New(),
		emptyOnExhaustion: options.EmptyOnExhaustion,
		logger:            options.Logger,
	}
	for _, ev := range script {
		var items []Item
		if ev != nil {
			items = append(items, ev.items()...)
		}
		s.script.Add(items)
	}
	return s
}

// isNil reports whether obj is nil or a typed nil pointer.
func isNil(obj FileObject) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func fdOf(obj FileObject) int {
	if isNil(obj) {
		return -1
	}
	return obj.Fd()
}

func checkEvents(events IOEvent) error {
	if events == 0 || events&^EventReadWrite != 0 {
		return fmt.Errorf("%w: %#x", errorx.ErrInvalidEvents, uint8(events))
	}
	return nil
}

func (s *Selector) notRegistered(obj FileObject) error {
	return fmt.Errorf("%w: fd %d", errorx.ErrNotRegistered, fdOf(obj))
}

// Register registers obj for events, replacing any earlier registration of obj.
func (s *Selector) Register(obj FileObject, events IOEvent, data interface{}) (*Key, error) {
	if isNil(obj) {
		return nil, errorx.ErrNilObject
	}
	if err := checkEvents(events); err != nil {
		return nil, err
	}
	key := &Key{FileObj: obj, Fd: obj.Fd(), Events: events, Data: data}
	s.keys[obj] = key
	s.logger.Debugf("selector: fd %d registered for %s", key.Fd, events)
	return key, nil
}

// Modify changes the events and the data of a registered obj.
func (s *Selector) Modify(obj FileObject, events IOEvent, data interface{}) (*Key, error) {
	if _, ok := s.keys[obj]; !ok {
		return nil, s.notRegistered(obj)
	}
	return s.Register(obj, events, data)
}

// Unregister removes the registration of obj and returns it.
func (s *Selector) Unregister(obj FileObject) (*Key, error) {
	key, ok := s.keys[obj]
	if !ok {
		return nil, s.notRegistered(obj)
	}
	delete(s.keys, obj)
	s.logger.Debugf("selector: fd %d unregistered", key.Fd)
	return key, nil
}

// Key returns the registration of obj.
func (s *Selector) Key(obj FileObject) (*Key, error) {
	key, ok := s.keys[obj]
	if !ok {
		return nil, s.notRegistered(obj)
	}
	return key, nil
}

// Map returns a snapshot of every registration, keyed by object.
func (s *Selector) Map() map[FileObject]*Key {
	m := make(map[FileObject]*Key, len(s.keys))
	for obj, key := range s.keys {
		m[obj] = key
	}
	return m
}

// Len tells how many objects are registered.
func (s *Selector) Len() int {
	return len(s.keys)
}

// Select returns the next scripted batch at once, timeout is ignored.
//
// Once the script is used up it returns an *ExhaustedError carrying s, or an
// empty batch if the Selector was created with WithEmptyOnExhaustion. A scripted
// object without a live registration is an error wrapping errorx.ErrNotRegistered.
func (s *Selector) Select(_ time.Duration) ([]Ready, error) {
	if s.script.Length() == 0 {
		if s.emptyOnExhaustion {
			return []Ready{}, nil
		}
		s.logger.Debugf("selector: script exhausted after %d event(s)", s.consumed)
		return nil, &ExhaustedError{Selector: s}
	}
	items := s.script.Remove().([]Item)
	s.consumed++

	ready := make([]Ready, 0, len(items))
	for _, it := range items {
		key, ok := s.keys[it.Obj]
		if !ok {
			s.logger.Errorf("selector: scripted event #%d refers to unregistered fd %d", s.consumed, fdOf(it.Obj))
			return nil, fmt.Errorf("scripted event #%d: %w", s.consumed, s.notRegistered(it.Obj))
		}
		ready = append(ready, Ready{Key: key, Events: it.Events})
	}
	s.logger.Debugf("selector: event #%d resolved to %d ready object(s)", s.consumed, len(ready))
	return ready, nil
}

// Remaining tells how many scripted events have not been handed out yet.
func (s *Selector) Remaining() int {
	return s.script.Length()
}

// Consumed tells how many scripted events have been handed out.
func (s *Selector) Consumed() int {
	return s.consumed
}

// Owns reports whether err is the exhaustion error of s, possibly wrapped.
// The exhaustion of any other Selector is not owned.
func (s *Selector) Owns(err error) bool {
	var e *ExhaustedError
	return errors.As(err, &e) && e.Selector == s
}

// Run calls fn with s and turns the exhaustion of s into a normal return,
// so a loop that only stops on error ends exactly when the script does.
// Every other error, including the exhaustion of another Selector, is returned.
func (s *Selector) Run(fn func(*Selector) error) error {
	if err := fn(s); err != nil && !s.Owns(err) {
		return err
	}
	return nil
}

// Close drops every registration, it never fails.
func (s *Selector) Close() error {
	s.keys = make(map[FileObject]*Key)
	s.logger.Debugf("selector: closed")
	return nil
}
