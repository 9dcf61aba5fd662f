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

package watch

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Ignored reports whether path names a backup file or a file still being written.
func Ignored(path string) bool {
	return strings.HasSuffix(path, "~") || strings.HasSuffix(path, ".open")
}

// Queue holds paths until they have not been touched for the settle delay.
type Queue struct {
	delay   time.Duration
	now     func() time.Time
	mu      sync.Mutex
	pending map[string]time.Time
}

func NewQueue(delay time.Duration) *Queue {
	return &Queue{
		delay:   delay,
		now:     time.Now,
		pending: make(map[string]time.Time),
	}
}

// Touch records activity on path. Ignored paths are not queued and Touch returns false.
func (q *Queue) Touch(path string) bool {
	return q.touchAt(path, q.now())
}

// Settled queues path as if it had been quiet for the whole settle delay.
func (q *Queue) Settled(path string) bool {
	return q.touchAt(path, q.now().Add(-q.delay))
}

func (q *Queue) touchAt(path string, t time.Time) bool {
	if Ignored(path) {
		return false
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending[path] = t
	return true
}

// Forget removes path from the queue.
func (q *Queue) Forget(path string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, path)
}

// Len returns the number of queued paths.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Ready removes and returns the paths that have been quiet for at least the settle delay, sorted by name.
func (q *Queue) Ready() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	var ready []string
	for p, t := range q.pending {
		if now.Sub(t) >= q.delay {
			ready = append(ready, p)
			delete(q.pending, p)
		}
	}
	sort.Strings(ready)
	return ready
}
