////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

// Package suggest turns a live query into an ordered, deduplicated list of
// emoji suggestions blending favorites, recents, and search results.
// Requests are debounced and superseded requests are silently discarded:
// within one session only the most recently dispatched search ever reaches
// the caller.
package suggest

import (
	"sort"
	"sync"
	"time"

	jww "github.com/spf13/jwalterweatherman"

	"gitlab.com/elixxir/emojipicker/emoji"
)

// Suggestion is one candidate produced for a query. It is transient; nothing
// here is persisted.
type Suggestion struct {
	Emoji          emoji.Emoji
	IsRecent       bool
	IsFavorite     bool
	IsSearchResult bool
}

// Favorites is the read side of the starred-emoji set.
type Favorites interface {
	Favorites() []string
	IsFavorite(id string) bool
}

// Recents is the read side of the recently-selected list.
type Recents interface {
	IDs() []string
	Contains(id string) bool
}

// Params contains the pipeline's tunable parameters.
type Params struct {
	// Debounce is how long after the last keystroke a non-empty query
	// waits before dispatching. Empty queries bypass it entirely.
	Debounce time.Duration
}

// DefaultParams returns the default configuration for Params.
func DefaultParams() Params {
	return Params{Debounce: 150 * time.Millisecond}
}

// Pipeline produces suggestions for queries. Create with NewPipeline and
// release with Close.
type Pipeline struct {
	store   *emoji.Store
	favs    Favorites
	recents Recents
	params  Params

	mux        sync.Mutex
	timer      *time.Timer
	generation uint64
	closed     bool
}

// NewPipeline creates a suggestion pipeline over the given collaborators.
// favs and recents may be nil, disabling their sections.
func NewPipeline(store *emoji.Store, favs Favorites, recents Recents,
	params Params) *Pipeline {
	return &Pipeline{
		store:   store,
		favs:    favs,
		recents: recents,
		params:  params,
	}
}

// Request asks for suggestions for query. deliver is called on an internal
// goroutine with the result, unless a newer Request supersedes this one
// first, in which case it is never called. Non-empty queries are debounced;
// an empty query (the "just opened" browse state) dispatches immediately.
func (p *Pipeline) Request(query string, deliver func([]Suggestion)) {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.closed {
		return
	}
	p.generation++
	gen := p.generation
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}

	if query == "" {
		go p.run(gen, query, deliver)
		return
	}
	p.timer = time.AfterFunc(p.params.Debounce, func() {
		p.run(gen, query, deliver)
	})
}

// Close cancels any pending request. Requests after Close are ignored and no
// callback fires afterward for work that had not yet been delivered.
func (p *Pipeline) Close() {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.closed = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// run computes and, if still current, delivers the result.
func (p *Pipeline) run(gen uint64, query string, deliver func([]Suggestion)) {
	results := p.compose(query)

	p.mux.Lock()
	stale := p.closed || gen != p.generation
	p.mux.Unlock()
	if stale {
		jww.TRACE.Printf("Discarding stale suggestion result for %q "+
			"(generation %d)", query, gen)
		return
	}
	deliver(results)
}

// compose builds the concatenated favorites + recents + search sections.
// Favorites and recents are never removed by dedup; search results that
// repeat an id from the earlier sections are excluded.
func (p *Pipeline) compose(query string) []Suggestion {
	var out []Suggestion
	listed := make(map[string]struct{})

	// Favorites section, always first.
	if p.favs != nil {
		for _, id := range p.favs.Favorites() {
			e := p.resolveID(id)
			if e == nil {
				continue
			}
			listed[e.ID] = struct{}{}
			out = append(out, Suggestion{
				Emoji:      *e,
				IsFavorite: true,
				IsRecent:   p.isRecent(e.ID),
			})
		}
	}

	// Recents section, only for the browse (empty-query) state.
	if query == "" && p.recents != nil {
		for _, id := range p.recents.IDs() {
			e := p.resolveID(id)
			if e == nil {
				continue
			}
			if _, dup := listed[e.ID]; dup {
				continue
			}
			listed[e.ID] = struct{}{}
			out = append(out, Suggestion{
				Emoji:    *e,
				IsRecent: true,
			})
		}
	}

	// Search section.
	var found []emoji.Emoji
	if query != "" {
		found = p.store.Search(query)
	} else {
		found = p.browse()
	}
	for i := range found {
		e := &found[i]
		if _, dup := listed[e.ID]; dup {
			continue
		}
		listed[e.ID] = struct{}{}
		out = append(out, Suggestion{
			Emoji:          *e,
			IsSearchResult: true,
			IsFavorite:     p.favs != nil && p.favs.IsFavorite(e.ID),
			IsRecent:       p.isRecent(e.ID),
		})
	}

	return out
}

// browse aggregates every category in parallel for the empty-query state.
// Each category is sorted alphabetically by name, categories are merged in
// their fixed order, and the merged list is deduplicated by name (first
// occurrence wins). Any category failure degrades to the full unranked
// dataset.
func (p *Pipeline) browse() []emoji.Emoji {
	type catResult struct {
		emojis []emoji.Emoji
		err    error
	}
	results := make([]catResult, len(emoji.Categories))

	var wg sync.WaitGroup
	wg.Add(len(emoji.Categories))
	for i, cat := range emoji.Categories {
		go func(i int, cat string) {
			defer wg.Done()
			emojis, err := p.store.Category(cat)
			sort.SliceStable(emojis, func(a, b int) bool {
				return emojis[a].Name < emojis[b].Name
			})
			results[i] = catResult{emojis, err}
		}(i, cat)
	}
	wg.Wait()

	var merged []emoji.Emoji
	seen := make(map[string]struct{})
	for _, res := range results {
		if res.err != nil {
			jww.WARN.Printf("Category aggregation failed, "+
				"degrading to full dataset: %+v", res.err)
			return p.store.Emojis()
		}
		for _, e := range res.emojis {
			if _, dup := seen[e.Name]; dup {
				continue
			}
			seen[e.Name] = struct{}{}
			merged = append(merged, e)
		}
	}
	return merged
}

// resolveID resolves a stored id via search first (it tolerates near-miss
// ids), falling back to the direct lookup map.
func (p *Pipeline) resolveID(id string) *emoji.Emoji {
	if results := p.store.Search(id); len(results) > 0 {
		for i := range results {
			if results[i].ID == id {
				return &results[i]
			}
		}
		if results[0].ID == emoji.NormalizeID(id) {
			return &results[0]
		}
	}
	return p.store.Lookup(id)
}

func (p *Pipeline) isRecent(id string) bool {
	return p.recents != nil && p.recents.Contains(id)
}
