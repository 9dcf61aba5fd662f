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
	"github.com/nlnwa/warcstream/cmd/warc/internal"
	"github.com/nlnwa/warcstream/pkg/filter"
	"github.com/nlnwa/warcstream/pkg/pipeline"
	"github.com/spf13/cobra"
)

type conf struct {
	reject       bool
	canonicalURI bool
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "filter FIELD REGEX PATH...",
		Short: "Copy records whose field matches a regular expression",
		Long: `Copy records from warc files to new files, keeping only records where the value
of FIELD matches REGEX completely. FIELD is a WARC header field name, or "content" to
match the record payload.

Each input file gets its own output file. Output files are gzip compressed when the
input file name ends in .gz.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sense := filter.DiscardIfNotMatches
			if c.reject {
				sense = filter.DiscardIfMatches
			}
			var opts []filter.Option
			if c.canonicalURI {
				opts = append(opts, filter.WithCanonicalURI())
			}
			f, err := filter.New(args[0], args[1], sense, opts...)
			if err != nil {
				return err
			}
			return internal.RunPipeline(cmd, args[2:], pipeline.Config{Filter: f})
		},
	}

	cmd.Flags().BoolVar(&c.reject, "reject", false, "keep matching records out of the copy instead")
	cmd.Flags().BoolVar(&c.canonicalURI, "canonical-uri", false, "match URI fields in WHATWG canonical form")
	internal.AddOutputFlags(cmd, "filtered_")

	return cmd
}
