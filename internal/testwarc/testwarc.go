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

// Package testwarc builds WARC content for tests.
package testwarc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// Record describes a record to generate.
type Record struct {
	Version   string // defaults to WARC/1.0
	Type      string // defaults to resource
	TargetURI string
	Date      string // defaults to 2021-02-03T10:20:30Z
	ID        string // defaults to a new urn:uuid
	Payload   string
}

// String renders the record in WARC syntax with CRLF line endings.
func (r Record) String() string {
	version := r.Version
	if version == "" {
		version = "WARC/1.0"
	}
	typ := r.Type
	if typ == "" {
		typ = "resource"
	}
	date := r.Date
	if date == "" {
		date = "2021-02-03T10:20:30Z"
	}
	id := r.ID
	if id == "" {
		id = NewID()
	}

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "%s\r\n", version)
	fmt.Fprintf(sb, "WARC-Type: %s\r\n", typ)
	fmt.Fprintf(sb, "WARC-Date: %s\r\n", date)
	fmt.Fprintf(sb, "WARC-Record-ID: %s\r\n", id)
	if r.TargetURI != "" {
		fmt.Fprintf(sb, "WARC-Target-URI: %s\r\n", r.TargetURI)
	}
	fmt.Fprintf(sb, "Content-Type: text/html\r\n")
	fmt.Fprintf(sb, "Content-Length: %d\r\n", len(r.Payload))
	sb.WriteString("\r\n")
	sb.WriteString(r.Payload)
	sb.WriteString("\r\n\r\n")
	return sb.String()
}

// NewID returns a new WARC record id.
func NewID() string {
	return "<urn:uuid:" + uuid.NewString() + ">"
}

// Records returns n resource records with distinct target URIs and payloads.
func Records(n int, prefix string) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			ID:        NewID(),
			TargetURI: fmt.Sprintf("http://example.com/%s/%d.html", prefix, i),
			Payload:   fmt.Sprintf("<html><body>%s record %d</body></html>", prefix, i),
		}
	}
	return records
}

// Plain renders records into one uncompressed WARC stream.
func Plain(records ...Record) []byte {
	buf := &bytes.Buffer{}
	for _, r := range records {
		buf.WriteString(r.String())
	}
	return buf.Bytes()
}

// Gzip renders records as a WARC stream where every record is a separate gzip member.
func Gzip(records ...Record) []byte {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)
	for _, r := range records {
		gz.Reset(buf)
		if _, err := gz.Write([]byte(r.String())); err != nil {
			panic(err)
		}
		if err := gz.Close(); err != nil {
			panic(err)
		}
	}
	return buf.Bytes()
}

// GzipBytes compresses data as a single gzip member.
func GzipBytes(data []byte) []byte {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)
	if _, err := gz.Write(data); err != nil {
		panic(err)
	}
	if err := gz.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WriteFile writes data to name inside dir and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
