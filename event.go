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

// Event is one entry of a Selector script, either an Item or a Batch.
// Each Event is handed out by exactly one call to Select.
type Event interface {
	items() []Item
}

// Item is an object scripted to be ready for Events.
type Item struct {
	Obj    FileObject
	Events IOEvent
}

func (it Item) items() []Item {
	return []Item{it}
}

// Single scripts obj as readable.
func Single(obj FileObject) Item {
	return Item{Obj: obj, Events: EventRead}
}

// Tagged scripts obj as ready for events.
func Tagged(obj FileObject, events IOEvent) Item {
	return Item{Obj: obj, Events: events}
}

// Batch is a group of items returned together by one Select, in order.
type Batch []Item

func (b Batch) items() []Item {
	return b
}

// Script builds a script where every object is a readable Single.
func Script(objs ...FileObject) []Event {
	events := make([]Event, len(objs))
	for i, obj := range objs {
		events[i] = Single(obj)
	}
	return events
}
