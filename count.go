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
)

// Count returns the number of records in the given files and directories. Record blocks are skipped, not read.
func Count(paths ...string) (int64, error) {
	if len(paths) == 0 {
		return 0, errors.New("warcstream: no files or directories to count records in")
	}
	s, err := OpenPaths(paths)
	if err != nil {
		return 0, err
	}
	defer func() { _ = s.Close() }()

	var n int64
	for {
		ok, err := s.Advance(false)
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}
