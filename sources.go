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
	"os"
	"path/filepath"
	"sort"
)

// ExpandSources turns a list of files and directories into a list of absolute file paths.
//
// Files are kept in the order given. A directory is replaced by the regular files directly inside it, sorted
// lexicographically by file name. Sub directories are not descended into.
func ExpandSources(paths ...string) ([]string, error) {
	var sources []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, &SourceError{Source: p, Err: err}
		}
		fi, err := os.Stat(abs)
		if err != nil {
			return nil, &SourceError{Source: abs, Err: err}
		}
		if !fi.IsDir() {
			sources = append(sources, abs)
			continue
		}

		entries, err := os.ReadDir(abs)
		if err != nil {
			return nil, &SourceError{Source: abs, Err: err}
		}
		var names []string
		for _, e := range entries {
			if e.Type().IsRegular() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			sources = append(sources, filepath.Join(abs, name))
		}
	}
	return sources, nil
}
