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

package filter

import (
	"testing"

	"github.com/nlnwa/warcstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(uri, payload string) *warcstream.Record {
	var wf warcstream.WarcFields
	wf.Set(warcstream.WarcType, warcstream.Response)
	wf.Set(warcstream.WarcRecordID, "<urn:uuid:e9a0cecc-0221-11e7-adb1-0242ac120008>")
	if uri != "" {
		wf.Set(warcstream.WarcTargetURI, uri)
	}
	if payload == "" {
		return warcstream.NewRecord(warcstream.V1_0, wf, nil)
	}
	return warcstream.NewRecord(warcstream.V1_0, wf, []byte(payload))
}

func TestFilter_Keep(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		pattern   string
		sense     Sense
		opts      []Option
		record    *warcstream.Record
		wantMatch bool
		wantKeep  bool
	}{
		{"whole value match", "WARC-Target-URI", `http://example\.com/.*`, DiscardIfNotMatches, nil,
			newRecord("http://example.com/index.html", "x"), true, true},
		{"partial match is no match", "WARC-Target-URI", `example\.com`, DiscardIfNotMatches, nil,
			newRecord("http://example.com/index.html", "x"), false, false},
		{"reject matching", "warc-target-uri", `.*\.html`, DiscardIfMatches, nil,
			newRecord("http://example.com/index.html", "x"), true, false},
		{"reject keeps non matching", "WARC-Type", "request", DiscardIfMatches, nil,
			newRecord("http://example.com/", "x"), false, true},
		{"missing field", "WARC-Target-URI", ".*", DiscardIfNotMatches, nil,
			newRecord("", "x"), false, false},
		{"missing field rejected never", "WARC-Target-URI", ".*", DiscardIfMatches, nil,
			newRecord("", "x"), false, true},
		{"content", Content, `(?s).*needle.*`, DiscardIfNotMatches, nil,
			newRecord("http://example.com/", "hay\nneedle\nhay"), true, true},
		{"content without payload", "Content", ".*", DiscardIfNotMatches, nil,
			newRecord("http://example.com/", ""), false, false},
		{"alternation is anchored", "WARC-Type", "request|response", DiscardIfNotMatches, nil,
			newRecord("http://example.com/", "x"), true, true},
		{"raw uri", "WARC-Target-URI", `http://example\.com/b`, DiscardIfNotMatches, nil,
			newRecord("http://EXAMPLE.com:80/a/../b", "x"), false, false},
		{"canonical uri", "WARC-Target-URI", `http://example\.com/b`, DiscardIfNotMatches, []Option{WithCanonicalURI()},
			newRecord("http://EXAMPLE.com:80/a/../b", "x"), true, true},
		{"canonical uri in brackets", "WARC-Target-URI", `http://example\.com/`, DiscardIfNotMatches, []Option{WithCanonicalURI()},
			newRecord("<http://example.com>", "x"), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.field, tt.pattern, tt.sense, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMatch, f.Matches(tt.record), "Matches")
			assert.Equal(t, tt.wantKeep, f.Keep(tt.record), "Keep")
		})
	}
}

func TestNew_errors(t *testing.T) {
	_, err := New("WARC-Type", "(", DiscardIfMatches)
	assert.Error(t, err)

	_, err = New("", ".*", DiscardIfMatches)
	assert.Error(t, err)
}
