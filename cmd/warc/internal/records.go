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
	"errors"

	"github.com/nlnwa/warcstream"
	log "github.com/sirupsen/logrus"
)

// Each calls fn for every record in s until fn returns false.
//
// If skipBad is set, sources that cannot be opened or parsed are logged and skipped. Other errors end the iteration.
func Each(s *warcstream.Stream, wantPayload, skipBad bool, fn func(rec *warcstream.Record) (bool, error)) error {
	for {
		ok, err := s.Advance(wantPayload)
		if err != nil {
			if !skipBad || !recoverable(err) {
				return err
			}
			log.Warnf("skipping rest of source: %v", err)
			if err := s.SkipSource(); err != nil {
				return err
			}
			continue
		}
		if !ok {
			return nil
		}
		more, err := fn(s.Record())
		if err != nil || !more {
			return err
		}
	}
}

func recoverable(err error) bool {
	return errors.Is(err, warcstream.ErrSourceUnreadable) ||
		errors.Is(err, warcstream.ErrMalformedHeader) ||
		errors.Is(err, warcstream.ErrTruncatedStream)
}
