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

// Package filter selects WARC records by matching a regular expression against one header field or the payload.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nlnwa/warcstream"
	"github.com/nlnwa/whatwg-url/url"
	log "github.com/sirupsen/logrus"
)

// Content is the pseudo field name matching the record payload instead of a header field.
const Content = "content"

// Sense decides what happens to a record whose field matches the pattern.
type Sense int8

const (
	// DiscardIfMatches drops matching records and keeps the rest.
	DiscardIfMatches Sense = iota
	// DiscardIfNotMatches keeps matching records and drops the rest.
	DiscardIfNotMatches
)

func (s Sense) String() string {
	switch s {
	case DiscardIfMatches:
		return "discard if matches"
	case DiscardIfNotMatches:
		return "discard if not matches"
	default:
		return "unknown"
	}
}

// uriFields are canonicalized before matching when WithCanonicalURI is set.
var uriFields = []string{warcstream.WarcTargetURI, warcstream.WarcRefersToTargetURI}

// Filter matches a regular expression against the whole value of a field.
type Filter struct {
	field   string
	pattern *regexp.Regexp
	sense   Sense
	opts    *options
}

// New compiles pattern and returns a Filter for field.
//
// The pattern must match the complete field value, not just a part of it.
func New(field, pattern string, sense Sense, opts ...Option) (*Filter, error) {
	if field == "" {
		return nil, fmt.Errorf("filter: missing field name")
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("filter: invalid pattern '%s': %w", pattern, err)
	}
	return &Filter{
		field:   field,
		pattern: re,
		sense:   sense,
		opts:    newOptions(opts...),
	}, nil
}

// Matches reports whether the record's field value matches the pattern. A missing field never matches.
func (f *Filter) Matches(rec *warcstream.Record) bool {
	v, ok := f.value(rec)
	if !ok {
		return false
	}
	return f.pattern.MatchString(v)
}

// Keep reports whether the record survives the filter.
func (f *Filter) Keep(rec *warcstream.Record) bool {
	if f.sense == DiscardIfMatches {
		return !f.Matches(rec)
	}
	return f.Matches(rec)
}

func (f *Filter) String() string {
	return fmt.Sprintf("%s %s '%s'", f.field, f.sense, f.pattern)
}

func (f *Filter) value(rec *warcstream.Record) (string, bool) {
	if strings.EqualFold(f.field, Content) {
		p, ok := rec.Payload()
		return string(p), ok
	}
	v, ok := rec.Get(f.field)
	if !ok {
		return "", false
	}
	if f.opts.canonicalURI && isURIField(f.field) {
		v = canonicalize(v)
	}
	return v, true
}

func isURIField(name string) bool {
	for _, n := range uriFields {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// canonicalize returns the WHATWG serialization of a URI. Values that do not parse are returned trimmed of the
// angle brackets WARC/0.18 allows around them.
func canonicalize(v string) string {
	v = strings.TrimSuffix(strings.TrimPrefix(v, "<"), ">")
	u, err := url.Parse(v)
	if err != nil {
		log.Debugf("could not canonicalize '%s': %v", v, err)
		return v
	}
	return u.String()
}
