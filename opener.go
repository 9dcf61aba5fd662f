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
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	log "github.com/sirupsen/logrus"
)

var errIsDirectory = errors.New("is a directory")

// Compression tells how a source is encoded on disk.
type Compression int8

const (
	Plain Compression = iota
	Gzip
)

func (c Compression) String() string {
	switch c {
	case Plain:
		return "plain"
	case Gzip:
		return "gzip"
	default:
		return "unknown"
	}
}

// Opener opens a source for reading.
type Opener interface {
	// Open returns a stream of decoded bytes for the source and the compression detected.
	Open(source string) (io.ReadCloser, Compression, error)
}

// FileOpener opens files on the local file system.
//
// The compression is detected from the content, not from the file name: the file is first opened through a gzip
// decoder, and if that fails the file is opened again from the start as plain data. Probing consumes bytes from
// the file handle, so the probing handle is never reused.
type FileOpener struct{}

func (FileOpener) Open(source string) (io.ReadCloser, Compression, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, Plain, &SourceError{Source: source, Err: err}
	}
	if fi, err := f.Stat(); err != nil || fi.IsDir() {
		_ = f.Close()
		if err == nil {
			err = errIsDirectory
		}
		return nil, Plain, &SourceError{Source: source, Err: err}
	}

	g, gzErr := gzip.NewReader(f)
	if gzErr == nil {
		log.Debugf("detected gzip source %s", source)
		return &gzipFile{Reader: g, file: f}, Gzip, nil
	}
	_ = f.Close()

	f, err = os.Open(source)
	if err != nil {
		return nil, Plain, &SourceError{Source: source, Err: err}
	}
	log.Debugf("detected plain source %s", source)
	return f, Plain, nil
}

// gzipFile closes both the decoder and the file beneath it.
type gzipFile struct {
	*gzip.Reader
	file *os.File
}

// Close closes the file. A decoding error reported again by the decoder on close is ignored; Read has already
// returned it.
func (g *gzipFile) Close() error {
	_ = g.Reader.Close()
	return g.file.Close()
}
