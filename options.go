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
	"github.com/panjf2000/mockpoll/pkg/fdgen"
	"github.com/panjf2000/mockpoll/pkg/logging"
)

// Option is a function that will set up option.
type Option func(opts *Options)

func loadOptions(options ...Option) *Options {
	opts := &Options{
		RemoteHost:     DefaultRemoteHost,
		RemotePortBase: DefaultRemotePortBase,
	}
	for _, option := range options {
		option(opts)
	}
	if opts.RemoteHost == "" {
		opts.RemoteHost = DefaultRemoteHost
	}
	if opts.RemotePortBase == 0 {
		opts.RemotePortBase = DefaultRemotePortBase
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetDefaultLogger()
	}
	if opts.Generator == nil {
		opts.Generator = fdgen.Default
	}
	return opts
}

// Options are shared by sockets, listeners and selectors.
type Options struct {
	// Logger is the customized logger for logging info, if it is not set,
	// then mockpoll will use the default logger powered by go.uber.org/zap.
	Logger logging.Logger

	// Generator hands out descriptors, fdgen.Default is used when it is nil.
	// Objects from different generators may collide as registration keys.
	Generator *fdgen.Generator

	// RemoteHost is the host part of the peer addresses a Listener synthesizes,
	// DefaultRemoteHost is used when it is empty.
	RemoteHost string

	// RemotePortBase is the port just below the first synthesized peer port,
	// DefaultRemotePortBase is used when it is zero.
	RemotePortBase int

	// EmptyOnExhaustion makes Selector.Select return an empty batch instead of
	// an *ExhaustedError once the script is used up.
	EmptyOnExhaustion bool
}

// WithOptions sets up all options.
func WithOptions(options Options) Option {
	return func(opts *Options) {
		*opts = options
	}
}

// WithLogger sets up a customized logger.
func WithLogger(logger logging.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithGenerator sets up the descriptor generator.
func WithGenerator(g *fdgen.Generator) Option {
	return func(opts *Options) {
		opts.Generator = g
	}
}

// WithRemoteAddr sets up the peer host and the base port of a Listener.
func WithRemoteAddr(host string, portBase int) Option {
	return func(opts *Options) {
		opts.RemoteHost = host
		opts.RemotePortBase = portBase
	}
}

// WithEmptyOnExhaustion makes an exhausted Selector return empty batches.
func WithEmptyOnExhaustion() Option {
	return func(opts *Options) {
		opts.EmptyOnExhaustion = true
	}
}
