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

// Version identifies the WARC format version of a record.
type Version struct {
	id  uint8
	txt string
}

func (v *Version) String() string {
	return v.txt
}

var (
	// V0_18 is WARC/0.18, the draft format used by e.g. ClueWeb09.
	V0_18 = &Version{id: 1, txt: "WARC/0.18"}
	// V1_0 is WARC/1.0 as published in ISO 28500:2009.
	V1_0 = &Version{id: 2, txt: "WARC/1.0"}
)

// versionFromMarker resolves a version line. The second return value is false for unknown markers.
func versionFromMarker(line string) (*Version, bool) {
	switch line {
	case V0_18.txt:
		return V0_18, true
	case V1_0.txt:
		return V1_0, true
	}
	return nil, false
}
