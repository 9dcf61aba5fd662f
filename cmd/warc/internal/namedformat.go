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

package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// Sprintt is like fmt.Sprintf, but accepts named parameters from a map.
//
// Example:
//
//	params := map[string]any{
//	  "hello": "world",
//	  "num":   42,
//	}
//
//	result := internal.Sprintt("Hello %{hello}s. The answer is %{num}5d", params)
//
// Result will then be: 'Hello world. The answer is    42'
func Sprintt(format string, params map[string]any) string {
	var args []any
	index := make(map[string]int)
	sb := &strings.Builder{}
	for {
		start := strings.Index(format, "%{")
		if start < 0 {
			break
		}
		end := strings.IndexByte(format[start:], '}')
		if end < 0 {
			break
		}
		end += start

		key := format[start+2 : end]
		n, ok := index[key]
		if !ok {
			args = append(args, params[key])
			n = len(args)
			index[key] = n
		}
		sb.WriteString(format[:start+1])
		sb.WriteString("[" + strconv.Itoa(n) + "]")
		format = format[end+1:]
	}
	sb.WriteString(format)
	return fmt.Sprintf(sb.String(), args...)
}

// CropString shortens s to at most n characters, marking a cut with "...".
func CropString(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// Contains reports whether e is one of s.
func Contains(s []string, e string) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}
