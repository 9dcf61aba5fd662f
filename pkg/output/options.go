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

package output

type options struct {
	dir            string
	prefix         string
	dropHeaders    bool
	openFileSuffix string
}

// Option configures a Writer.
type Option interface {
	apply(*options)
}

type funcOption struct {
	f func(*options)
}

func (fo *funcOption) apply(o *options) {
	fo.f(o)
}

func newFuncOption(f func(*options)) *funcOption {
	return &funcOption{f: f}
}

func defaultOptions() options {
	return options{
		prefix:         "filtered_",
		openFileSuffix: ".open",
	}
}

// WithDir sets the directory output files are written to. The directory is created if missing.
// defaults to the directory of each source
func WithDir(dir string) Option {
	return newFuncOption(func(o *options) {
		o.dir = dir
	})
}

// WithPrefix sets the string prepended to the source file name to form the output file name.
// defaults to "filtered_"
func WithPrefix(prefix string) Option {
	return newFuncOption(func(o *options) {
		o.prefix = prefix
	})
}

// WithDropHeaders writes only record payloads, each followed by a blank line.
func WithDropHeaders(drop bool) Option {
	return newFuncOption(func(o *options) {
		o.dropHeaders = drop
	})
}

// WithOpenFileSuffix sets the suffix used for files while they are being written.
// defaults to ".open"
func WithOpenFileSuffix(suffix string) Option {
	return newFuncOption(func(o *options) {
		o.openFileSuffix = suffix
	})
}
