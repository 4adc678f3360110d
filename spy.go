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

// Call is one recorded invocation of a spied method.
type Call struct {
	Method string
	Args   []interface{}
}

// Recorder keeps the invocation history of the spied methods of a scripted object.
// It never influences what the object does.
type Recorder struct {
	calls []Call
}

func (r *Recorder) record(method string, args ...interface{}) {
	r.calls = append(r.calls, Call{Method: method, Args: args})
}

// Calls returns the recorded calls of method in invocation order,
// or every recorded call when method is empty.
func (r *Recorder) Calls(method string) []Call {
	var calls []Call
	for _, c := range r.calls {
		if method == "" || c.Method == method {
			calls = append(calls, c)
		}
	}
	return calls
}

// CallCount tells how many times method has been called.
func (r *Recorder) CallCount(method string) int {
	n := 0
	for _, c := range r.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Called tells whether method has been called at least once.
func (r *Recorder) Called(method string) bool {
	return r.CallCount(method) > 0
}

// ResetCalls forgets the recorded history.
func (r *Recorder) ResetCalls() {
	r.calls = nil
}
