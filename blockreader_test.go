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
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockReader_ReadLine(t *testing.T) {
	assert := assert.New(t)

	long := strings.Repeat("x", 3*defaultBufferSize)
	r := NewBlockReaderSize(strings.NewReader("one\r\ntwo\n"+long+"\nlast"), 16)

	l, err := r.ReadLine()
	assert.NoError(err)
	assert.Equal("one", l)
	assert.Equal(int64(5), r.N())

	l, err = r.ReadLine()
	assert.NoError(err)
	assert.Equal("two", l)
	assert.Equal(int64(9), r.N())

	l, err = r.ReadLine()
	assert.NoError(err)
	assert.Equal(long, l)

	l, err = r.ReadLine()
	assert.NoError(err)
	assert.Equal("last", l)
	assert.Equal(4, r.Line())

	_, err = r.ReadLine()
	assert.Equal(io.EOF, err)
	assert.Equal(int64(9+len(long)+1+4), r.N())
}

func TestBlockReader_ReadBlock(t *testing.T) {
	assert := assert.New(t)

	r := NewBlockReader(strings.NewReader("0123456789"))
	b, err := r.ReadBlock(4)
	assert.NoError(err)
	assert.Equal("0123", string(b))
	assert.Equal(int64(4), r.N())

	_, err = r.ReadBlock(10)
	assert.ErrorIs(err, ErrTruncatedStream)
	var truncErr *TruncatedError
	if assert.ErrorAs(err, &truncErr) {
		assert.Equal(int64(10), truncErr.Want)
		assert.Equal(int64(6), truncErr.Got)
	}
}

func TestBlockReader_Skip(t *testing.T) {
	assert := assert.New(t)

	r := NewBlockReader(strings.NewReader("0123456789"))
	assert.NoError(r.Skip(7))
	assert.Equal(int64(7), r.N())
	assert.ErrorIs(r.Skip(4), ErrTruncatedStream)
}

func TestBlockReader_SkipBlankLines(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantN   int64
		wantErr error
	}{
		{"none", "WARC/1.0\r\n", 0, 0, nil},
		{"crlf", "\r\n\r\nWARC/1.0\r\n", 2, 4, nil},
		{"lf", "\n\n\nWARC", 3, 3, nil},
		{"mixed", "\r\n\n\r\nx", 3, 5, nil},
		{"cr without lf", "\r\n\rx", 1, 2, nil},
		{"end of stream", "\r\n\r\n", 2, 4, io.EOF},
		{"empty", "", 0, 0, io.EOF},
		{"lone cr at end", "\r\n\r", 2, 3, io.EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewBlockReader(strings.NewReader(tt.input))
			n, err := r.SkipBlankLines()
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.want, n)
			assert.Equal(t, tt.wantN, r.N())
		})
	}
}
