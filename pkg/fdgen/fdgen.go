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

// Package fdgen hands out fake file descriptors to scripted objects.
//
// A Generator is monotonic and never repeats a value, so every object built from
// the same Generator can safely be used as a distinct registration key.
// Default lives as long as the process does.
package fdgen

import "go.uber.org/atomic"

// DefaultStart is the first descriptor returned by Default.
const DefaultStart = 10

// Default is the process-wide generator shared by scripted objects that are not
// given a generator of their own.
var Default = New(DefaultStart)

// Generator produces strictly increasing descriptors, it is safe for concurrent use.
type Generator struct {
	next *atomic.Int64
}

// New returns a Generator whose first descriptor is start.
func New(start int) *Generator {
	return &Generator{next: atomic.NewInt64(int64(start))}
}

// Next returns a descriptor that has never been returned by g before.
func (g *Generator) Next() int {
	return int(g.next.Inc() - 1)
}

// Peek tells which descriptor the next call to Next will return.
func (g *Generator) Peek() int {
	return int(g.next.Load())
}
