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

package cat

import (
	"io"
	"sort"

	"github.com/nlnwa/warcstream"
	"github.com/nlnwa/warcstream/cmd/warc/internal"
	"github.com/spf13/cobra"
)

type conf struct {
	recordCount int
	headerOnly  bool
	payloadOnly bool
	skipBad     bool
	id          []string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "cat PATH...",
		Short: "Write records from warc files to stdout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sort.Strings(c.id)
			return runE(cmd.OutOrStdout(), c, args)
		},
	}

	cmd.Flags().IntVarP(&c.recordCount, "record-count", "c", 0, "The maximum number of records to show")
	cmd.Flags().BoolVar(&c.headerOnly, "header", false, "show header only")
	cmd.Flags().BoolVar(&c.payloadOnly, "payload", false, "show payload only")
	cmd.Flags().BoolVar(&c.skipBad, "skip-bad", false, "skip the rest of a file after an error instead of stopping")
	cmd.Flags().StringArrayVar(&c.id, "id", []string{}, "id")
	cmd.MarkFlagsMutuallyExclusive("header", "payload")

	return cmd
}

func runE(out io.Writer, c *conf, paths []string) error {
	s, err := warcstream.OpenPaths(paths)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	count := 0
	return internal.Each(s, !c.headerOnly, c.skipBad, func(rec *warcstream.Record) (bool, error) {
		if len(c.id) > 0 {
			if id, _ := rec.Get(warcstream.WarcRecordID); !internal.Contains(c.id, id) {
				return true, nil
			}
		}
		count++

		var err error
		if c.payloadOnly {
			p, _ := rec.Payload()
			_, err = out.Write(p)
		} else {
			_, err = rec.WriteTo(out, !c.headerOnly)
		}
		if err != nil {
			return false, err
		}
		return c.recordCount <= 0 || count < c.recordCount, nil
	})
}
