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

// Package htmlstrip removes markup from WARC record payloads.
package htmlstrip

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/nlnwa/warcstream"
)

var policy = bluemonday.StrictPolicy()

// Text returns html with every tag removed. Script and style content is dropped, character entities are kept
// escaped.
func Text(html string) string {
	return policy.Sanitize(html)
}

// Record replaces the payload of rec with its text and updates Content-Length. It reports false, leaving the record
// untouched, if the payload was not read.
func Record(rec *warcstream.Record) bool {
	p, ok := rec.Payload()
	if !ok {
		return false
	}
	rec.SetPayload(policy.SanitizeBytes(p))
	return true
}
