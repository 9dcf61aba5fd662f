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

// Package pipeline copies records from a Stream to per source output files, filtering or stripping them on the way.
package pipeline

import (
	"context"
	"errors"

	"github.com/nlnwa/warcstream"
	"github.com/nlnwa/warcstream/pkg/filter"
	"github.com/nlnwa/warcstream/pkg/htmlstrip"
	"github.com/nlnwa/warcstream/pkg/output"
	log "github.com/sirupsen/logrus"
)

// Config selects what Run does with each record.
type Config struct {
	// Filter drops records it does not keep. A nil Filter keeps every record.
	Filter *filter.Filter
	// StripHTML replaces each kept payload with its text.
	StripHTML bool
	// Output receives the kept records. Required.
	Output *output.Writer
}

// Result counts the records seen by Run.
type Result struct {
	Read    int64
	Written int64
}

// Run reads every record from s and writes those passing cfg to cfg.Output.
//
// Output is registered as transition notifier on s so that each output file is completed as soon as its source is.
// Run stops at the first error, or with ctx.Err() if ctx is cancelled between records.
func Run(ctx context.Context, s *warcstream.Stream, cfg Config) (Result, error) {
	var res Result
	if cfg.Output == nil {
		return res, errors.New("pipeline: missing output")
	}
	s.RegisterTransitionNotifier(cfg.Output)

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		ok, err := s.Advance(true)
		if err != nil {
			return res, err
		}
		if !ok {
			break
		}
		res.Read++

		rec := s.Record()
		if cfg.Filter != nil && !cfg.Filter.Keep(rec) {
			log.Debugf("dropped %s at %s:%d", rec, s.Source(), s.Key())
			continue
		}
		if cfg.StripHTML {
			htmlstrip.Record(rec)
		}
		if err := cfg.Output.Write(s.Source(), rec); err != nil {
			return res, err
		}
		res.Written++
	}
	log.Infof("read %d records, wrote %d", res.Read, res.Written)
	return res, nil
}
