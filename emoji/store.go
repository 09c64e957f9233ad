////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package emoji

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"gitlab.com/elixxir/emojipicker/event"
)

const noticeSource = "emoji"

// index is the immutable result of one dataset build.
type index struct {
	ds     *Dataset
	byID   map[string]*Emoji
	byName map[string]*Emoji
}

// Store owns the lazily built emoji dataset. The first caller triggers the
// build; concurrent callers during the build all wait on the same in-flight
// result (single-flight). A failed build latches: every subsequent call
// degrades to empty results without retrying until Clear, so a broken
// dataset cannot cause a load storm.
type Store struct {
	mux     sync.Mutex
	source  Source
	events  *event.Manager
	idx     *index
	loaded  bool
	failed  bool
	warned  bool
	loading bool
	waiters []chan *index
}

// NewStore creates a Store around the given Source. The event manager may be
// nil, in which case load failures are only logged.
func NewStore(source Source, events *event.Manager) *Store {
	return &Store{source: source, events: events}
}

// get returns the built index, building it on first use. Returns nil once a
// build has failed (until Clear).
func (s *Store) get() *index {
	s.mux.Lock()
	if s.loaded || s.failed {
		idx := s.idx
		s.mux.Unlock()
		return idx
	}
	if s.loading {
		w := make(chan *index, 1)
		s.waiters = append(s.waiters, w)
		s.mux.Unlock()
		return <-w
	}
	s.loading = true
	s.mux.Unlock()

	idx := s.build()

	s.mux.Lock()
	s.loading = false
	if idx != nil {
		s.idx = idx
		s.loaded = true
	} else {
		s.failed = true
	}
	waiters := s.waiters
	s.waiters = nil
	s.mux.Unlock()

	for _, w := range waiters {
		w <- idx
	}
	return idx
}

// build runs the source and indexes the result. Returns nil on failure after
// surfacing a single user-visible warning.
func (s *Store) build() *index {
	ds, err := s.source()
	if err != nil || ds == nil || len(ds.Emojis) == 0 {
		if err == nil {
			err = errors.New("source produced an empty dataset")
		}
		s.warnOnce(err)
		return nil
	}

	idx := &index{
		ds:     ds,
		byID:   make(map[string]*Emoji, len(ds.Emojis)),
		byName: make(map[string]*Emoji, len(ds.Emojis)),
	}
	for i := range ds.Emojis {
		e := &ds.Emojis[i]
		idx.byID[e.ID] = e
		if _, ok := idx.byName[strings.ToLower(e.Name)]; !ok {
			idx.byName[strings.ToLower(e.Name)] = e
		}
	}
	jww.INFO.Printf("Built emoji dataset: %d emojis, %d aliases, "+
		"%d categories", len(ds.Emojis), len(ds.Aliases),
		len(ds.Categories))
	return idx
}

// warnOnce logs and reports the first dataset failure only.
func (s *Store) warnOnce(err error) {
	s.mux.Lock()
	already := s.warned
	s.warned = true
	s.mux.Unlock()
	if already {
		return
	}
	jww.WARN.Printf("Emoji dataset unavailable: %+v", err)
	if s.events != nil {
		s.events.Notify(event.Warning, noticeSource,
			"Emoji suggestions are unavailable: %s", err)
	}
}

// Clear drops the cache and all latched failure state, forcing the next call
// to rebuild the dataset.
func (s *Store) Clear() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.idx = nil
	s.loaded = false
	s.failed = false
	s.warned = false
}

// Search returns ranked matches for a non-empty query. An empty query
// returns nil; callers wanting a browsable list should aggregate categories
// instead (see Category). Returns nil after a failed load.
func (s *Store) Search(query string) []Emoji {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	idx := s.get()
	if idx == nil {
		return nil
	}

	type ranked struct {
		e     *Emoji
		score int
	}
	var matches []ranked
	for i := range idx.ds.Emojis {
		e := &idx.ds.Emojis[i]
		if score := rank(e, query); score >= 0 {
			matches = append(matches, ranked{e, score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score < matches[j].score
		}
		return matches[i].e.Name < matches[j].e.Name
	})

	out := make([]Emoji, len(matches))
	for i, m := range matches {
		out[i] = *m.e
	}
	return out
}

// rank scores an emoji against a lowercase query. Lower is better; negative
// means no match.
func rank(e *Emoji, query string) int {
	q := NormalizeID(query)
	switch {
	case e.ID == q:
		return 0
	case strings.HasPrefix(e.ID, q):
		return 1
	}
	for _, kw := range e.Keywords {
		if strings.HasPrefix(kw, query) {
			return 2
		}
	}
	for _, word := range strings.Fields(strings.ToLower(e.Name)) {
		if strings.HasPrefix(word, query) {
			return 2
		}
	}
	if strings.Contains(e.ID, q) ||
		strings.Contains(strings.ToLower(e.Name), query) {
		return 3
	}
	return -1
}

// Lookup resolves an id, alias, or name to its emoji. The id is tried
// verbatim first, then normalized, then through the alias table, then as a
// name. Returns nil for unknown ids and after a failed load.
//
// This is a direct map lookup so render passes never pay search-ranking
// cost. The returned value must be treated as read-only.
func (s *Store) Lookup(id string) *Emoji {
	idx := s.get()
	if idx == nil {
		return nil
	}
	if e, ok := idx.byID[id]; ok {
		return e
	}
	norm := NormalizeID(id)
	if e, ok := idx.byID[norm]; ok {
		return e
	}
	if canonical, ok := idx.ds.Aliases[norm]; ok {
		if e, ok2 := idx.byID[canonical]; ok2 {
			return e
		}
	}
	if e, ok := idx.byName[strings.ToLower(id)]; ok {
		return e
	}
	return nil
}

// Category returns the members of one of the fixed categories in dataset
// order. The frequent pseudo-category is always empty because its contents
// come from the caller's recents. Unknown categories and failed loads return
// an error so callers can fall back to a degraded result set.
func (s *Store) Category(name string) ([]Emoji, error) {
	if !IsCategory(name) {
		return nil, errors.Errorf("unknown emoji category %q", name)
	}
	if name == CategoryFrequent {
		return nil, nil
	}
	idx := s.get()
	if idx == nil {
		return nil, errors.New("emoji dataset unavailable")
	}
	ids := idx.ds.Categories[name]
	out := make([]Emoji, 0, len(ids))
	for _, id := range ids {
		if e, ok := idx.byID[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

// Emojis returns the full dataset in stable order, or nil after a failed
// load. Used by the live renderer to pre-warm its glyph map.
func (s *Store) Emojis() []Emoji {
	idx := s.get()
	if idx == nil {
		return nil
	}
	return idx.ds.Emojis
}
