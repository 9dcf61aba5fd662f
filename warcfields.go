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

import (
	"fmt"
	"io"
	"strings"
)

type nameValue struct {
	Name  string
	Value string
}

func (n *nameValue) String() string {
	return n.Name + ": " + n.Value
}

// WarcFields is an ordered set of header fields. Names are unique and compared case-insensitively,
// while the spelling and order seen first are kept for serialization.
type WarcFields []*nameValue

func (wf *WarcFields) find(name string) *nameValue {
	for _, nv := range *wf {
		if strings.EqualFold(nv.Name, name) {
			return nv
		}
	}
	return nil
}

// Get returns the value of the named field. It is case insensitive.
// The second return value reports whether the field exists.
func (wf *WarcFields) Get(name string) (string, bool) {
	if nv := wf.find(name); nv != nil {
		return nv.Value, true
	}
	return "", false
}

func (wf *WarcFields) Has(name string) bool {
	return wf.find(name) != nil
}

// Set replaces the value of the named field, or appends it if it doesn't exist.
func (wf *WarcFields) Set(name string, value string) {
	if nv := wf.find(name); nv != nil {
		nv.Value = value
		return
	}
	*wf = append(*wf, &nameValue{Name: name, Value: value})
}

func (wf *WarcFields) Delete(name string) {
	var result []*nameValue
	for _, nv := range *wf {
		if !strings.EqualFold(nv.Name, name) {
			result = append(result, nv)
		}
	}
	*wf = result
}

// Names returns the lower-cased field names in header order.
func (wf *WarcFields) Names() []string {
	names := make([]string, 0, len(*wf))
	for _, nv := range *wf {
		names = append(names, strings.ToLower(nv.Name))
	}
	return names
}

// Map returns the fields keyed by lower-cased name.
func (wf *WarcFields) Map() map[string]string {
	m := make(map[string]string, len(*wf))
	for _, nv := range *wf {
		m[strings.ToLower(nv.Name)] = nv.Value
	}
	return m
}

func (wf *WarcFields) Write(w io.Writer) (bytesWritten int64, err error) {
	var n int
	for _, field := range *wf {
		n, err = fmt.Fprintf(w, "%s: %s\r\n", field.Name, field.Value)
		bytesWritten += int64(n)
		if err != nil {
			return
		}
	}
	return
}

func (wf *WarcFields) String() string {
	sb := &strings.Builder{}
	if _, err := wf.Write(sb); err != nil {
		panic(err)
	}
	return sb.String()
}

func (wf WarcFields) clone() WarcFields {
	r := make(WarcFields, 0, len(wf))
	for _, p := range wf {
		v := *p
		r = append(r, &v)
	}
	return r
}
