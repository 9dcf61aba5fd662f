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
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/nlnwa/warcstream/internal/countingreader"
)

const (
	defaultBufferSize = 64 * 1024
	maxBlockPrealloc  = 1024 * 1024
)

// BlockReader reads text lines and fixed size blocks from a byte stream while keeping count of
// the number of bytes consumed.
type BlockReader struct {
	counter *countingreader.Reader
	r       *bufio.Reader
	line    int
}

// NewBlockReader returns a BlockReader reading from r with a default buffer size.
func NewBlockReader(r io.Reader) *BlockReader {
	return NewBlockReaderSize(r, defaultBufferSize)
}

// NewBlockReaderSize returns a BlockReader reading from r with a buffer of at least size bytes.
func NewBlockReaderSize(r io.Reader, size int) *BlockReader {
	c := countingreader.New(r)
	return &BlockReader{
		counter: c,
		r:       bufio.NewReaderSize(c, size),
	}
}

// N returns the number of bytes consumed through the BlockReader.
// Bytes buffered but not yet returned to the caller are not counted.
func (b *BlockReader) N() int64 {
	return b.counter.N() - int64(b.r.Buffered())
}

// Line returns the number of lines consumed as text lines.
func (b *BlockReader) Line() int {
	return b.line
}

// ReadLine returns the next line without its line terminator (LF or CRLF).
// Lines may be of any length. A last line without terminator is returned as is.
// When no more data is available, io.EOF is returned. A line cut off by a broken compressed stream is
// dropped and io.ErrUnexpectedEOF returned.
func (b *BlockReader) ReadLine() (string, error) {
	l, err := b.r.ReadBytes(lf)
	if err != nil && (err != io.EOF || len(l) == 0) {
		return "", err
	}
	b.line++
	l = bytes.TrimSuffix(l, []byte{lf})
	l = bytes.TrimSuffix(l, []byte{cr})
	return string(l), nil
}

// ReadBlock returns exactly n bytes. If the stream ends before n bytes are read, a *TruncatedError is returned.
func (b *BlockReader) ReadBlock(n int64) ([]byte, error) {
	buf := &bytes.Buffer{}
	if n < maxBlockPrealloc {
		buf.Grow(int(n))
	} else {
		buf.Grow(maxBlockPrealloc)
	}
	got, err := io.CopyN(buf, b.r, n)
	if got < n {
		if err == nil || endOfData(err) {
			return nil, &TruncatedError{What: "record block", Want: n, Got: got}
		}
		return nil, err
	}
	return buf.Bytes(), nil
}

// Skip discards exactly n bytes. If the stream ends before n bytes are discarded, a *TruncatedError is returned.
func (b *BlockReader) Skip(n int64) error {
	got, err := io.CopyN(io.Discard, b.r, n)
	if got < n {
		if err == nil || endOfData(err) {
			return &TruncatedError{What: "record block", Want: n, Got: got}
		}
		return err
	}
	return nil
}

// SkipBlankLines consumes consecutive empty lines and returns how many were consumed.
// If the stream ends while skipping, io.EOF is returned together with the count.
func (b *BlockReader) SkipBlankLines() (int, error) {
	n := 0
	for {
		p, err := b.r.Peek(1)
		if err != nil {
			return n, err
		}
		switch p[0] {
		case lf:
			_, _ = b.r.Discard(1)
		case cr:
			p, err = b.r.Peek(2)
			if len(p) < 2 {
				if err == io.EOF {
					_, _ = b.r.Discard(1)
					return n + 1, err
				}
				return n, err
			}
			if p[1] != lf {
				return n, nil
			}
			_, _ = b.r.Discard(2)
		default:
			return n, nil
		}
		n++
		b.line++
	}
}

// endOfData reports whether err means the source ended, either cleanly or in the middle of a compressed member.
func endOfData(err error) bool {
	return err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF)
}
