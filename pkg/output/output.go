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

// Package output writes records to one output file per source file.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/klauspost/compress/gzip"
	"github.com/nlnwa/warcstream"
	"github.com/prometheus/tsdb/fileutil"
	log "github.com/sirupsen/logrus"
)

const lockFileName = ".warcstream.lock"

// ErrLocked is returned by New when another writer holds the output directory.
var ErrLocked = errors.New("output: directory is locked by another writer")

// ErrOverwriteSource is returned when an output file would replace the source it is derived from.
var ErrOverwriteSource = errors.New("output: output file would overwrite source")

// Writer writes records to files named after the source they were read from.
//
// Every source gets its own output file. The file is named by prefixing the source file name and is gzip compressed
// when the source name ends in .gz, with one gzip member per record. While being written the file carries an extra
// suffix which is removed when the file is closed.
//
// Writer implements warcstream.TransitionNotifier; registered with a Stream it closes each output file as soon as
// its source is finished. A Writer is not safe for concurrent use.
type Writer struct {
	opts   options
	lock   *flock.Flock
	source string
	file   *os.File
	buf    *bufio.Writer
	gz     *gzip.Writer
	files  []string
	closed bool
}

// New creates a Writer. If an output directory is configured it is created if needed and locked until Close.
func New(opts ...Option) (*Writer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	if o.dir == "" && o.prefix == "" {
		return nil, ErrOverwriteSource
	}
	w := &Writer{opts: o}

	if o.dir != "" {
		if err := os.MkdirAll(o.dir, 0777); err != nil {
			return nil, fmt.Errorf("output: failed to create directory %s: %w", o.dir, err)
		}
		w.lock = flock.New(filepath.Join(o.dir, lockFileName))
		locked, err := w.lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("output: failed to lock %s: %w", o.dir, err)
		}
		if !locked {
			return nil, fmt.Errorf("%w: %s", ErrLocked, o.dir)
		}
	}
	return w, nil
}

// Name returns the path of the output file for source.
func (w *Writer) Name(source string) string {
	dir := w.opts.dir
	if dir == "" {
		dir = filepath.Dir(source)
	}
	return filepath.Join(dir, w.opts.prefix+filepath.Base(source))
}

// Files returns the paths of the output files completed so far.
func (w *Writer) Files() []string {
	return w.files
}

// Write appends rec to the output file for source, opening a new file if source differs from the previous call.
func (w *Writer) Write(source string, rec *warcstream.Record) error {
	if w.closed {
		return errors.New("output: write to closed writer")
	}
	if w.file != nil && w.source != source {
		if err := w.closeFile(); err != nil {
			return err
		}
	}
	if w.file == nil {
		if err := w.createFile(source); err != nil {
			return err
		}
	}

	var out io.Writer = w.buf
	if w.gz != nil {
		w.gz.Reset(w.buf)
		out = w.gz
	}

	if w.opts.dropHeaders {
		p, _ := rec.Payload()
		if _, err := out.Write(p); err != nil {
			return err
		}
		if _, err := out.Write([]byte("\n\n")); err != nil {
			return err
		}
	} else if _, err := rec.WriteTo(out, true); err != nil {
		return err
	}

	if w.gz != nil {
		return w.gz.Close()
	}
	return nil
}

// OnTransition closes the output file of the finished source.
func (w *Writer) OnTransition(finished, next string) error {
	if w.file != nil && w.source == finished {
		return w.closeFile()
	}
	return nil
}

// Close closes the current output file and releases the directory lock. It is safe to call Close more than once.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.closeFile()
	if w.lock != nil {
		if unlockErr := w.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
		_ = os.Remove(w.lock.Path())
	}
	return err
}

func (w *Writer) createFile(source string) error {
	name := w.Name(source)
	if sameFile(name, source) {
		return fmt.Errorf("%w: %s", ErrOverwriteSource, source)
	}
	path := name + w.opts.openFileSuffix
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	w.source = source
	w.file = file
	w.buf = bufio.NewWriter(file)
	if strings.HasSuffix(source, ".gz") {
		w.gz = gzip.NewWriter(w.buf)
	}
	log.Debugf("writing %s", path)
	return nil
}

func (w *Writer) closeFile() error {
	if w.file == nil {
		return nil
	}
	f := w.file
	buf := w.buf
	w.file, w.buf, w.gz, w.source = nil, nil, nil, ""

	if err := buf.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to flush file: %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %s: %w", f.Name(), err)
	}
	name := strings.TrimSuffix(f.Name(), w.opts.openFileSuffix)
	if err := fileutil.Rename(f.Name(), name); err != nil {
		return fmt.Errorf("failed to rename file: %s: %w", f.Name(), err)
	}
	w.files = append(w.files, name)
	log.Debugf("closed %s", name)
	return nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
