/*
 * Copyright 2021 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package warcstream

type options struct {
	opener     Opener
	notifiers  []TransitionNotifier
	bufferSize int
}

// Option configures a Stream.
type Option interface {
	apply(*options)
}

// EmptyOption does not alter the stream configuration. It can be embedded in
// another structure to build custom options.
type EmptyOption struct{}

func (EmptyOption) apply(*options) {}

// funcOption wraps a function that modifies options into an
// implementation of the Option interface.
type funcOption struct {
	f func(*options)
}

func (fo *funcOption) apply(po *options) {
	fo.f(po)
}

func newFuncOption(f func(*options)) *funcOption {
	return &funcOption{
		f: f,
	}
}

func defaultOptions() options {
	return options{
		opener:     FileOpener{},
		bufferSize: defaultBufferSize,
	}
}

func newOptions(opts ...Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	return &o
}

// WithOpener sets the Opener used to open sources.
// defaults to FileOpener
func WithOpener(opener Opener) Option {
	return newFuncOption(func(o *options) {
		o.opener = opener
	})
}

// WithTransitionNotifier registers a TransitionNotifier. Can be given more than once;
// notifiers are called in the order they were added.
func WithTransitionNotifier(n TransitionNotifier) Option {
	return newFuncOption(func(o *options) {
		o.notifiers = append(o.notifiers, n)
	})
}

// WithBufferSize sets the size of the read buffer used for each source.
// defaults to 64 KiB
func WithBufferSize(size int) Option {
	return newFuncOption(func(o *options) {
		if size > 0 {
			o.bufferSize = size
		}
	})
}
