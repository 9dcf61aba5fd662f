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

package ls

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/nlnwa/warcstream"
	"github.com/nlnwa/warcstream/cmd/warc/internal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultFormat = "%{offset}9d %{file}s %{id}s %{type}s %{uri}s"

var typeColors = map[string]*color.Color{
	warcstream.Warcinfo: color.New(color.FgCyan),
	warcstream.Request:  color.New(color.FgYellow),
	warcstream.Response: color.New(color.FgGreen),
	warcstream.Revisit:  color.New(color.FgMagenta),
	warcstream.Metadata: color.New(color.FgBlue),
}

type conf struct {
	recordCount int
	skipBad     bool
	format      string
	id          []string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "ls PATH...",
		Short: "List records from warc files",
		Long: `List one line per record.

The line format uses named verbs. Available names are offset, file, source, id, type, uri,
length and date, e.g. "%{offset}d %{uri}s".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sort.Strings(c.id)
			return runE(cmd, c, args)
		},
	}

	cmd.Flags().IntVarP(&c.recordCount, "record-count", "c", 0, "The maximum number of records to show")
	cmd.Flags().BoolVar(&c.skipBad, "skip-bad", false, "skip the rest of a file after an error instead of stopping")
	cmd.Flags().StringVarP(&c.format, "format", "f", defaultFormat, "line format")
	cmd.Flags().StringArrayVar(&c.id, "id", []string{}, "specify record ids to ls")

	return cmd
}

func runE(cmd *cobra.Command, c *conf, paths []string) error {
	s, err := warcstream.OpenPaths(paths)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	out := cmd.OutOrStdout()
	count := 0
	err = internal.Each(s, false, c.skipBad, func(rec *warcstream.Record) (bool, error) {
		id, _ := rec.Get(warcstream.WarcRecordID)
		if len(c.id) > 0 && !internal.Contains(c.id, id) {
			return true, nil
		}
		count++
		if _, err := fmt.Fprintln(out, formatRecord(c.format, s, rec)); err != nil {
			return false, err
		}
		return c.recordCount <= 0 || count < c.recordCount, nil
	})
	log.Infof("Count: %d", count)
	return err
}

func formatRecord(format string, s *warcstream.Stream, rec *warcstream.Record) string {
	id, _ := rec.Get(warcstream.WarcRecordID)
	uri, _ := rec.Get(warcstream.WarcTargetURI)
	date, _ := rec.Get(warcstream.WarcDate)
	typ := fmt.Sprintf("%-9.9s", rec.Type())
	if c, ok := typeColors[rec.Type()]; ok {
		typ = c.Sprint(typ)
	}
	return internal.Sprintt(format, map[string]any{
		"offset": s.Key(),
		"file":   filepath.Base(s.Source()),
		"source": s.Source(),
		"id":     id,
		"type":   typ,
		"uri":    internal.CropString(uri, 100),
		"length": rec.ContentLength(),
		"date":   date,
	})
}
