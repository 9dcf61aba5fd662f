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
	"strconv"
	"strings"
)

// ReadRecord decodes the next record from r.
//
// Blank lines before the version line are skipped. If the stream ends before another version line is found,
// ReadRecord returns (nil, nil); this is the normal end of a source.
//
// If wantPayload is false the record block is skipped instead of read, so the stream is positioned at the next record
// either way. The returned record's TotalRecordLength counts every byte consumed by this call.
func ReadRecord(r *BlockReader, wantPayload bool) (*Record, error) {
	start := r.N()

	version, err := readVersion(r)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, truncated("record", err)
	}

	headers, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	length, err := contentLength(headers)
	if err != nil {
		return nil, err
	}
	if !headers.Has(WarcType) {
		return nil, newHeaderFieldError(WarcType, "missing required field")
	}

	record := &Record{
		version: version,
		headers: headers,
	}

	if wantPayload {
		p, err := r.ReadBlock(length)
		if err != nil {
			return nil, err
		}
		if length > 0 {
			record.payload = p
			record.hasPayload = true
		}
	} else if err := r.Skip(length); err != nil {
		return nil, err
	}

	// The record must be followed by at least one blank line unless the source ends here
	n, err := r.SkipBlankLines()
	if err != nil && err != io.EOF {
		return nil, truncated("record separator", err)
	}
	if err == nil && n == 0 {
		return nil, newSyntaxError("missing blank line after record block", r.Line()+1)
	}

	record.totalLength = r.N() - start
	return record, nil
}

// readVersion skips blank lines and returns the version of the next record.
// io.EOF is returned if the stream ends before a non-blank line.
func readVersion(r *BlockReader) (*Version, error) {
	for {
		line, err := r.ReadLine()
		if err != nil {
			return nil, err
		}
		line = strings.Trim(line, sphtcrlf)
		if line == "" {
			continue
		}
		if v, ok := versionFromMarker(line); ok {
			return v, nil
		}
		if strings.HasPrefix(line, "WARC/") {
			return nil, newSyntaxError("unsupported WARC version: "+line, r.Line())
		}
		return nil, newSyntaxError("expected start of record", r.Line())
	}
}

// readHeader reads header lines up to and including the blank line ending the header block.
func readHeader(r *BlockReader) (WarcFields, error) {
	wf := WarcFields{}
	var last *nameValue
	for {
		line, err := r.ReadLine()
		if endOfData(err) {
			return nil, &TruncatedError{What: "record header"}
		}
		if err != nil {
			return nil, err
		}
		if line == "" {
			return wf, nil
		}

		// Continuation of the previous field value
		if (line[0] == sp || line[0] == ht) && last != nil {
			last.Value += " " + strings.Trim(line, sphtcrlf)
			continue
		}

		idx := strings.IndexByte(line, ':')
		if idx <= 0 {
			return nil, newSyntaxError("could not parse header line. Missing ':' in "+line, r.Line())
		}
		name := strings.Trim(line[:idx], sphtcrlf)
		value := strings.Trim(line[idx+1:], sphtcrlf)
		if nv := wf.find(name); nv != nil {
			nv.Value = value
			last = nv
			continue
		}
		last = &nameValue{Name: name, Value: value}
		wf = append(wf, last)
	}
}

func contentLength(headers WarcFields) (int64, error) {
	v, ok := headers.Get(ContentLength)
	if !ok {
		return 0, newHeaderFieldError(ContentLength, "missing required field")
	}
	length, err := strconv.ParseInt(v, 10, 64)
	if err != nil || length < 0 {
		return 0, newHeaderFieldErrorf(ContentLength, "invalid value '%s'", v)
	}
	return length, nil
}

// truncated turns an unexpected end of a compressed source into a *TruncatedError.
func truncated(what string, err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return &TruncatedError{What: what}
	}
	return err
}
