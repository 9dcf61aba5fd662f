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

/*
Package warcstream reads records from one or more WARC files as one continuous stream.

# WARC

The WARC format offers a standard way to structure, manage and store billions of resources collected from the web and elsewhere.
A WARC file is a sequence of records, each made of a version line, a header block, a blank line and a content block
of declared length. This package reads WARC/0.18 and WARC/1.0 records.

# Read records

The [Stream] is used to read records from a list of files. It is initialized with [NewStream] or [OpenPaths].
Each file may be gzip compressed or plain; the compression is detected from the content of each file.

	s, err := warcstream.OpenPaths([]string{"crawl/"})
	if err != nil {
		return err
	}
	defer s.Close()
	for {
		ok, err := s.Advance(true)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		fmt.Println(s.Key(), s.Record().Type())
	}

[Stream.Key] is the offset of the current record counted in decoded bytes from the start of the first file.

# Follow file transitions

A [TransitionNotifier] registered with [WithTransitionNotifier] or [Stream.RegisterTransitionNotifier] is called every
time the stream has read the last record of a file. This allows output that is organized per input file to be rotated.

# Single records

[ReadRecord] decodes one record from a [BlockReader].
*/
package warcstream
