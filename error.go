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
	"errors"
	"fmt"
)

var (
	// ErrSourceUnreadable is matched by errors returned when a source cannot be opened.
	ErrSourceUnreadable = errors.New("warcstream: source unreadable")
	// ErrMalformedHeader is matched by errors caused by an unparsable record header.
	ErrMalformedHeader = errors.New("warcstream: malformed header")
	// ErrTruncatedStream is matched by errors caused by a source ending inside a record.
	ErrTruncatedStream = errors.New("warcstream: truncated stream")
	// ErrStreamClosed is returned by Advance after Close.
	ErrStreamClosed = errors.New("warcstream: stream closed")
	// ErrPayloadNotRead is returned when writing the payload of a record whose block was skipped.
	ErrPayloadNotRead = errors.New("warcstream: record payload was not read")
)

// SourceError is returned when a source can be opened neither as gzip nor as plain data.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("warcstream: cannot open source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceUnreadable, e.Err}
}

// HeaderFieldError is used for missing or unparsable WARC header fields
type HeaderFieldError struct {
	fieldName string
	msg       string
}

func newHeaderFieldError(fieldName string, msg string) *HeaderFieldError {
	return &HeaderFieldError{fieldName: fieldName, msg: msg}
}

func newHeaderFieldErrorf(fieldName string, msg string, param ...interface{}) *HeaderFieldError {
	return &HeaderFieldError{fieldName: fieldName, msg: fmt.Sprintf(msg, param...)}
}

func (e *HeaderFieldError) Error() string {
	if e.fieldName != "" {
		return fmt.Sprintf("warcstream: %s at header %s", e.msg, e.fieldName)
	}
	return fmt.Sprintf("warcstream: %s", e.msg)
}

// Field returns the name of the offending header field.
func (e *HeaderFieldError) Field() string {
	return e.fieldName
}

func (e *HeaderFieldError) Is(target error) bool {
	return target == ErrMalformedHeader
}

// SyntaxError is used for syntactical errors like a missing version line or record separator
type SyntaxError struct {
	msg  string
	line int
}

func newSyntaxError(msg string, line int) *SyntaxError {
	return &SyntaxError{msg: msg, line: line}
}

func (e *SyntaxError) Error() string {
	if e.line > 0 {
		return fmt.Sprintf("warcstream: %s at line %d", e.msg, e.line)
	}
	return fmt.Sprintf("warcstream: %s", e.msg)
}

// Line returns the line number within the source where the error was detected.
func (e *SyntaxError) Line() int {
	return e.line
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrMalformedHeader
}

// TruncatedError is used when a source ends before a record is complete.
type TruncatedError struct {
	What string // the part of the record being read
	Want int64  // bytes declared
	Got  int64  // bytes available
}

func (e *TruncatedError) Error() string {
	if e.Want > 0 {
		return fmt.Sprintf("warcstream: truncated %s: expected %d bytes, got %d", e.What, e.Want, e.Got)
	}
	return fmt.Sprintf("warcstream: truncated %s", e.What)
}

func (e *TruncatedError) Is(target error) bool {
	return target == ErrTruncatedStream
}

// RecordError locates a parse or read failure within a stream.
type RecordError struct {
	Source string // source being read
	Key    int64  // stream position where the failing record starts
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%v (source %s, offset %d)", e.Err, e.Source, e.Key)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
