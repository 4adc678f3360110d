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

// Package errors defines common errors for mockpoll.
package errors

import "errors"

var (
	// ErrNotRegistered occurs when looking up, modifying or unregistering an object
	// that has no live registration, or when a scripted event refers to such an object.
	ErrNotRegistered = errors.New("mockpoll: object is not registered")
	// ErrInvalidEvents occurs when registering an object with an empty or unknown event mask.
	ErrInvalidEvents = errors.New("mockpoll: invalid events")
	// ErrNilObject occurs when trying to register a nil object.
	ErrNilObject = errors.New("mockpoll: nil object is not allowed")
	// ErrScriptExhausted occurs when a selector has handed out every scripted event.
	ErrScriptExhausted = errors.New("mockpoll: event script is exhausted")
)
