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
	"bytes"
	"io"
	"strconv"
	"strings"
)

const (
	sphtcrlf = " \t\r\n"  // Space, Tab, Carriage return, Newline
	cr       = '\r'       // Carriage return
	lf       = '\n'       // Newline
	sp       = ' '        // Space
	ht       = '\t'       // Tab
	crlf     = "\r\n"     // Carriage return, Newline
	crlfcrlf = "\r\n\r\n" // Carriage return, Newline, Carriage return, Newline
)

// Record is one decoded WARC record.
//
// A Record is created by ReadRecord and is never reused between calls. Header fields may be rewritten with Set and
// the payload replaced with SetPayload by collaborators that transform content.
type Record struct {
	version     *Version
	headers     WarcFields
	payload     []byte
	hasPayload  bool
	totalLength int64
}

// NewRecord creates a record from already parsed parts. It is mainly useful for tests and for collaborators
// producing derived records; decoded records come from ReadRecord.
func NewRecord(version *Version, headers WarcFields, payload []byte) *Record {
	r := &Record{version: version, headers: headers.clone()}
	if payload != nil {
		r.SetPayload(payload)
	}
	return r
}

func (r *Record) Version() *Version {
	return r.version
}

// Type returns the value of the WARC-Type field.
func (r *Record) Type() string {
	t, _ := r.headers.Get(WarcType)
	return t
}

// Get returns the value of a header field. Field names are case insensitive.
func (r *Record) Get(name string) (string, bool) {
	return r.headers.Get(name)
}

// Set sets a header field.
func (r *Record) Set(name, value string) {
	r.headers.Set(name, value)
}

// Fields returns a copy of the record header.
func (r *Record) Fields() *WarcFields {
	wf := r.headers.clone()
	return &wf
}

// ContentLength returns the declared length of the record block.
func (r *Record) ContentLength() int64 {
	v, _ := r.headers.Get(ContentLength)
	n, _ := strconv.ParseInt(v, 10, 64)
	return n
}

// Payload returns the record block. The second return value is false if the payload was not read.
func (r *Record) Payload() ([]byte, bool) {
	return r.payload, r.hasPayload
}

// SetPayload replaces the record block and updates Content-Length accordingly.
func (r *Record) SetPayload(p []byte) {
	r.payload = p
	r.hasPayload = true
	r.headers.Set(ContentLength, strconv.Itoa(len(p)))
}

// TotalRecordLength returns the number of bytes the record occupied in its source.
// Rewriting fields or payload does not change it.
func (r *Record) TotalRecordLength() int64 {
	return r.totalLength
}

// WriteTo writes the record in WARC syntax. If includePayload is false, only the version line and header is written.
//
// A record whose block was skipped while reading cannot be written with its payload: if includePayload is set and
// Content-Length is not zero, WriteTo writes nothing and returns ErrPayloadNotRead.
func (r *Record) WriteTo(w io.Writer, includePayload bool) (int64, error) {
	if includePayload && !r.blockAvailable() {
		return 0, ErrPayloadNotRead
	}
	var written int64
	n, err := io.WriteString(w, r.version.txt+crlf)
	written += int64(n)
	if err != nil {
		return written, err
	}
	n64, err := r.headers.Write(w)
	written += n64
	if err != nil {
		return written, err
	}
	n, err = io.WriteString(w, crlf)
	written += int64(n)
	if err != nil || !includePayload {
		return written, err
	}
	n, err = w.Write(r.payload)
	written += int64(n)
	if err != nil {
		return written, err
	}
	n, err = io.WriteString(w, crlfcrlf)
	written += int64(n)
	return written, err
}

// Serialize returns the record in WARC syntax. See WriteTo.
// If the block was skipped while reading, only the version line and header is returned.
func (r *Record) Serialize(includePayload bool) string {
	buf := &bytes.Buffer{}
	_, _ = r.WriteTo(buf, includePayload && r.blockAvailable())
	return buf.String()
}

// blockAvailable reports whether the record block can be written: it was read, or it is empty.
func (r *Record) blockAvailable() bool {
	return r.hasPayload || r.ContentLength() == 0
}

func (r *Record) String() string {
	sb := &strings.Builder{}
	sb.WriteString(r.version.txt)
	sb.WriteString(" ")
	sb.WriteString(r.Type())
	if id, ok := r.headers.Get(WarcRecordID); ok {
		sb.WriteString(" ")
		sb.WriteString(id)
	}
	return sb.String()
}
