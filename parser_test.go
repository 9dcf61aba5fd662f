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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const warcinfoCRLF = "WARC/1.0\r\n" +
	"WARC-Date: 2017-03-06T04:03:53Z\r\n" +
	"WARC-Record-ID: <urn:uuid:e9a0cecc-0221-11e7-adb1-0242ac120008>\r\n" +
	"WARC-Filename: temp-20170306040353.warc.gz\r\n" +
	"WARC-Type: warcinfo\r\n" +
	"Content-Type: application/warc-fields\r\n" +
	"Content-Length: 249\r\n" +
	"\r\n" +
	"software: Webrecorder Platform v3.7\r\n" +
	"format: WARC File Format 1.0\r\n" +
	"creator: temp-MJFXHZ4S\r\n" +
	"isPartOf: Temporary%20Collection\r\n" +
	"json-metadata: {\"title\": \"Temporary Collection\", \"size\": 2865, \"created_at\": 1488772924, \"type\": \"collection\", \"desc\": \"\"}\r\n" +
	"\r\n\r\n"

const warcinfoLF = "WARC/1.0\n" +
	"WARC-Date: 2017-03-06T04:03:53Z\n" +
	"WARC-Record-ID: <urn:uuid:e9a0cecc-0221-11e7-adb1-0242ac120008>\n" +
	"WARC-Filename: temp-20170306040353.warc.gz\n" +
	"WARC-Type: warcinfo\n" +
	"Content-Type: application/warc-fields\n" +
	"Content-Length: 244\n" +
	"\n" +
	"software: Webrecorder Platform v3.7\n" +
	"format: WARC File Format 1.0\n" +
	"creator: temp-MJFXHZ4S\n" +
	"isPartOf: Temporary%20Collection\n" +
	"json-metadata: {\"title\": \"Temporary Collection\", \"size\": 2865, \"created_at\": 1488772924, \"type\": \"collection\", \"desc\": \"\"}\n" +
	"\n\n"

const clueweb018 = "\r\n\r\nWARC/0.18\r\n" +
	"WARC-Type: response\r\n" +
	"WARC-Target-URI: http://00000-nrt-realestate.homepagestartup.com/\r\n" +
	"WARC-Date: 2009-03-65T08:43:19-0800\r\n" +
	"WARC-TREC-ID: clueweb09-en0000-00-00000\r\n" +
	"Content-Type: application/http;msgtype=response\r\n" +
	"Content-Length: 21\r\n" +
	"\r\n" +
	"HTTP/1.1 200 OK\r\n\r\nhi" +
	"\r\n\r\n"

func TestReadRecord(t *testing.T) {
	type expected struct {
		version     *Version
		recordType  string
		fields      map[string]string
		payload     string
		totalLength int64
	}
	tests := []struct {
		name    string
		input   string
		want    *expected
		wantErr error
	}{
		{"crlf", warcinfoCRLF,
			&expected{
				version:    V1_0,
				recordType: Warcinfo,
				fields: map[string]string{
					"warc-date":      "2017-03-06T04:03:53Z",
					"warc-record-id": "<urn:uuid:e9a0cecc-0221-11e7-adb1-0242ac120008>",
					"warc-filename":  "temp-20170306040353.warc.gz",
					"warc-type":      "warcinfo",
					"content-type":   "application/warc-fields",
					"content-length": "249",
				},
				payload:     "software: Webrecorder Platform v3.7\r\nformat: WARC File Format 1.0\r\ncreator: temp-MJFXHZ4S\r\nisPartOf: Temporary%20Collection\r\njson-metadata: {\"title\": \"Temporary Collection\", \"size\": 2865, \"created_at\": 1488772924, \"type\": \"collection\", \"desc\": \"\"}\r\n",
				totalLength: int64(len(warcinfoCRLF)),
			}, nil},
		{"lf", warcinfoLF,
			&expected{
				version:    V1_0,
				recordType: Warcinfo,
				fields: map[string]string{
					"warc-date":      "2017-03-06T04:03:53Z",
					"warc-record-id": "<urn:uuid:e9a0cecc-0221-11e7-adb1-0242ac120008>",
					"warc-filename":  "temp-20170306040353.warc.gz",
					"warc-type":      "warcinfo",
					"content-type":   "application/warc-fields",
					"content-length": "244",
				},
				payload:     "software: Webrecorder Platform v3.7\nformat: WARC File Format 1.0\ncreator: temp-MJFXHZ4S\nisPartOf: Temporary%20Collection\njson-metadata: {\"title\": \"Temporary Collection\", \"size\": 2865, \"created_at\": 1488772924, \"type\": \"collection\", \"desc\": \"\"}\n",
				totalLength: int64(len(warcinfoLF)),
			}, nil},
		{"warc 0.18 with leading blank lines", clueweb018,
			&expected{
				version:    V0_18,
				recordType: Response,
				fields: map[string]string{
					"warc-type":       "response",
					"warc-target-uri": "http://00000-nrt-realestate.homepagestartup.com/",
					"warc-date":       "2009-03-65T08:43:19-0800",
					"warc-trec-id":    "clueweb09-en0000-00-00000",
					"content-type":    "application/http;msgtype=response",
					"content-length":  "21",
				},
				payload:     "HTTP/1.1 200 OK\r\n\r\nhi",
				totalLength: int64(len(clueweb018)),
			}, nil},
		{"continuation line",
			"WARC/1.0\r\nWARC-Type: metadata\r\nX-Long: first\r\n  second\r\nContent-Length: 0\r\n\r\n\r\n\r\n",
			&expected{
				version:    V1_0,
				recordType: Metadata,
				fields: map[string]string{
					"warc-type":      "metadata",
					"x-long":         "first second",
					"content-length": "0",
				},
				totalLength: 81,
			}, nil},
		{"zero length without separator at end of file",
			"WARC/1.0\r\nWARC-Type: metadata\r\nContent-Length: 0\r\n\r\n",
			&expected{
				version:    V1_0,
				recordType: Metadata,
				fields: map[string]string{
					"warc-type":      "metadata",
					"content-length": "0",
				},
				totalLength: 52,
			}, nil},
		{"missing content length",
			"WARC/1.0\r\nWARC-Type: metadata\r\n\r\n\r\n\r\n",
			nil, ErrMalformedHeader},
		{"invalid content length",
			"WARC/1.0\r\nWARC-Type: metadata\r\nContent-Length: ten\r\n\r\n\r\n\r\n",
			nil, ErrMalformedHeader},
		{"negative content length",
			"WARC/1.0\r\nWARC-Type: metadata\r\nContent-Length: -1\r\n\r\n\r\n\r\n",
			nil, ErrMalformedHeader},
		{"missing warc type",
			"WARC/1.0\r\nContent-Length: 2\r\n\r\nab\r\n\r\n",
			nil, ErrMalformedHeader},
		{"missing colon",
			"WARC/1.0\r\nWARC-Type metadata\r\nContent-Length: 2\r\n\r\nab\r\n\r\n",
			nil, ErrMalformedHeader},
		{"not a record",
			"<html>\r\n",
			nil, ErrMalformedHeader},
		{"unsupported version",
			"WARC/2.0\r\nWARC-Type: metadata\r\nContent-Length: 0\r\n\r\n\r\n\r\n",
			nil, ErrMalformedHeader},
		{"missing separator",
			"WARC/1.0\r\nWARC-Type: metadata\r\nContent-Length: 2\r\n\r\nabWARC/1.0\r\n",
			nil, ErrMalformedHeader},
		{"truncated block",
			"WARC/1.0\r\nWARC-Type: metadata\r\nContent-Length: 200\r\n\r\nabc\r\n\r\n",
			nil, ErrTruncatedStream},
		{"truncated header",
			"WARC/1.0\r\nWARC-Type: metadata\r\nContent-Length: 2\r\n",
			nil, ErrTruncatedStream},
	}
	for _, tt := range tests {
		for _, wantPayload := range []bool{true, false} {
			t.Run(tt.name, func(t *testing.T) {
				assert := assert.New(t)

				r := NewBlockReader(strings.NewReader(tt.input))
				record, err := ReadRecord(r, wantPayload)
				if tt.wantErr != nil {
					assert.ErrorIs(err, tt.wantErr)
					assert.Nil(record)
					return
				}
				require.NoError(t, err)
				require.NotNil(t, record)

				assert.Equal(tt.want.version, record.Version())
				assert.Equal(tt.want.recordType, record.Type())
				assert.Equal(tt.want.fields, record.Fields().Map())
				assert.Equal(tt.want.totalLength, record.TotalRecordLength())
				assert.Equal(tt.want.totalLength, r.N())

				payload, ok := record.Payload()
				if wantPayload && tt.want.payload != "" {
					assert.True(ok)
					assert.Equal(tt.want.payload, string(payload))
					assert.Equal(int64(len(payload)), record.ContentLength())
				} else {
					assert.False(ok)
					assert.Nil(payload)
				}

				next, err := ReadRecord(r, wantPayload)
				assert.NoError(err)
				assert.Nil(next)
			})
		}
	}
}

func TestReadRecord_emptyInput(t *testing.T) {
	for _, input := range []string{"", "\r\n", "\n\n\r\n"} {
		r := NewBlockReader(strings.NewReader(input))
		record, err := ReadRecord(r, true)
		assert.NoError(t, err)
		assert.Nil(t, record)
	}
}

func TestReadRecord_sequence(t *testing.T) {
	assert := assert.New(t)

	input := warcinfoCRLF + clueweb018 + warcinfoLF
	r := NewBlockReader(strings.NewReader(input))

	var total int64
	var types []string
	for {
		record, err := ReadRecord(r, false)
		assert.NoError(err)
		if record == nil {
			break
		}
		total += record.TotalRecordLength()
		assert.Equal(total, r.N())
		types = append(types, record.Type())
	}
	assert.Equal([]string{Warcinfo, Response, Warcinfo}, types)
	assert.Equal(int64(len(input)), total)
}

func TestReadRecord_errorLocation(t *testing.T) {
	input := "WARC/1.0\r\nWARC-Type: metadata\r\nbroken header\r\nContent-Length: 0\r\n\r\n"
	_, err := ReadRecord(NewBlockReader(strings.NewReader(input)), true)

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 3, syntaxErr.Line())
}

func TestReadRecord_contentLengthField(t *testing.T) {
	_, err := ReadRecord(NewBlockReader(strings.NewReader("WARC/1.0\r\nWARC-Type: metadata\r\n\r\n")), true)

	var fieldErr *HeaderFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, ContentLength, fieldErr.Field())
}

func TestRecord_roundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"crlf", warcinfoCRLF},
		{"lf", warcinfoLF},
		{"warc 0.18", clueweb018},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)

			original, err := ReadRecord(NewBlockReader(strings.NewReader(tt.input)), true)
			require.NoError(t, err)

			serialized := original.Serialize(true)
			parsed, err := ReadRecord(NewBlockReader(strings.NewReader(serialized)), true)
			require.NoError(t, err)

			assert.Equal(original.Version(), parsed.Version())
			assert.Equal(original.Fields(), parsed.Fields())
			p1, _ := original.Payload()
			p2, _ := parsed.Payload()
			assert.True(bytes.Equal(p1, p2))
			assert.Equal(int64(len(serialized)), parsed.TotalRecordLength())
		})
	}

	// CRLF input is reproduced byte for byte
	record, err := ReadRecord(NewBlockReader(strings.NewReader(warcinfoCRLF)), true)
	require.NoError(t, err)
	assert.Equal(t, warcinfoCRLF, record.Serialize(true))
}
