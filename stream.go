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
	"io"
	"iter"

	log "github.com/sirupsen/logrus"
)

// TransitionNotifier is notified each time a Stream has read the last record of a source.
type TransitionNotifier interface {
	// OnTransition is called with the source just finished and the source that will be read next.
	// next is the empty string when finished was the last source.
	OnTransition(finished, next string) error
}

// TransitionFunc adapts an ordinary function to the TransitionNotifier interface.
type TransitionFunc func(finished, next string) error

func (f TransitionFunc) OnTransition(finished, next string) error {
	return f(finished, next)
}

type openSource struct {
	id          string
	compression Compression
	rc          io.ReadCloser
	reader      *BlockReader
}

// Stream reads records from a sequence of sources as if they were one continuous stream.
//
// Sources are read in the order given. Each source may be gzip compressed or plain; the compression is detected per
// source. Key reports the position of the current record counted in decoded bytes from the start of the first source.
//
// A Stream is not safe for concurrent use. Create one Stream per consumer.
type Stream struct {
	opts    *options
	queue   []string
	current *openSource
	pos     int64
	key     int64
	record  *Record
	source  string
	err     error
	closed  bool
}

// NewStream creates a Stream reading the given sources in order. No source is opened before the first call to Advance.
func NewStream(sources []string, opts ...Option) *Stream {
	return &Stream{
		opts:  newOptions(opts...),
		queue: append([]string(nil), sources...),
	}
}

// OpenPaths expands paths with ExpandSources and returns a Stream over the result.
func OpenPaths(paths []string, opts ...Option) (*Stream, error) {
	sources, err := ExpandSources(paths...)
	if err != nil {
		return nil, err
	}
	return NewStream(sources, opts...), nil
}

// RegisterTransitionNotifier adds a notifier to be called at every source transition.
func (s *Stream) RegisterTransitionNotifier(n TransitionNotifier) {
	s.opts.notifiers = append(s.opts.notifiers, n)
}

// Advance reads the next record. It returns false when all sources are exhausted.
//
// When a source has no more records it is closed, the registered notifiers are called and reading continues with the
// next source. If wantPayload is false, record blocks are skipped and Record().Payload() reports no payload.
//
// Errors opening or reading a source are returned as is and repeated by later calls; use SkipSource to continue
// with the next source.
func (s *Stream) Advance(wantPayload bool) (bool, error) {
	if s.closed {
		return false, ErrStreamClosed
	}
	if s.err != nil {
		return false, s.err
	}

	for {
		if s.current == nil {
			if len(s.queue) == 0 {
				return false, nil
			}
			if err := s.open(); err != nil {
				s.err = err
				return false, err
			}
		}

		start := s.pos
		rec, err := ReadRecord(s.current.reader, wantPayload)
		if err != nil {
			s.err = &RecordError{Source: s.current.id, Key: start, Err: err}
			return false, s.err
		}
		if rec != nil {
			s.key = start
			s.pos += rec.totalLength
			s.record = rec
			s.source = s.current.id
			return true, nil
		}

		if err := s.finishSource(); err != nil {
			return false, err
		}
	}
}

// All returns an iterator over the remaining records. Iteration stops after the first error.
func (s *Stream) All(wantPayload bool) iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for {
			ok, err := s.Advance(wantPayload)
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok || !yield(s.record, nil) {
				return
			}
		}
	}
}

// Record returns the record read by the last successful call to Advance.
func (s *Stream) Record() *Record {
	return s.record
}

// Key returns the stream position of the record returned by Record.
func (s *Stream) Key() int64 {
	return s.key
}

// Source returns the id of the source the current record was read from.
func (s *Stream) Source() string {
	return s.source
}

// SkipSource abandons the source being read, or the source that failed to open, and clears the error state.
// Notifiers are called as if the source had been read to the end.
func (s *Stream) SkipSource() error {
	if s.closed {
		return ErrStreamClosed
	}
	s.err = nil
	if s.current != nil {
		return s.finishSource()
	}
	if len(s.queue) == 0 {
		return nil
	}
	skipped := s.queue[0]
	s.queue = s.queue[1:]
	log.Debugf("skipping source %s", skipped)
	return s.notify(skipped, s.next())
}

// Close releases the source being read. It is safe to call Close more than once and at any time.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.current != nil {
		rc := s.current.rc
		s.current = nil
		return rc.Close()
	}
	return nil
}

func (s *Stream) open() error {
	id := s.queue[0]
	rc, compression, err := s.opts.opener.Open(id)
	if err != nil {
		if !errors.Is(err, ErrSourceUnreadable) {
			err = &SourceError{Source: id, Err: err}
		}
		return err
	}
	s.queue = s.queue[1:]
	s.current = &openSource{
		id:          id,
		compression: compression,
		rc:          rc,
		reader:      NewBlockReaderSize(rc, s.opts.bufferSize),
	}
	log.Debugf("reading %s source %s at offset %d", compression, id, s.pos)
	return nil
}

func (s *Stream) finishSource() error {
	finished := s.current.id
	rc := s.current.rc
	s.current = nil
	var closeErr error
	if err := rc.Close(); err != nil {
		closeErr = fmt.Errorf("warcstream: failed to close source %s: %w", finished, err)
	}
	return errors.Join(closeErr, s.notify(finished, s.next()))
}

func (s *Stream) next() string {
	if len(s.queue) > 0 {
		return s.queue[0]
	}
	return ""
}

func (s *Stream) notify(finished, next string) error {
	log.Debugf("finished source %s, next: '%s'", finished, next)
	for _, n := range s.opts.notifiers {
		if err := n.OnTransition(finished, next); err != nil {
			return fmt.Errorf("warcstream: transition notifier failed after %s: %w", finished, err)
		}
	}
	return nil
}
