////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package render

import (
	"sync"

	jww "github.com/spf13/jwalterweatherman"
	"go.uber.org/ratelimit"

	"gitlab.com/elixxir/emojipicker/boundary"
	"gitlab.com/elixxir/emojipicker/emoji"
	"gitlab.com/elixxir/emojipicker/shortcode"
)

// Surface is the live, editable view the host exposes to the incremental
// pass. Only visible lines are ever scanned.
type Surface interface {
	// VisibleRange returns the first and last visible line, inclusive.
	VisibleRange() (first, last int)

	// GetLine returns line n without its trailing newline.
	GetLine(n int) string

	// EditMode reports whether the surface is in source-editing mode.
	EditMode() bool

	// LivePreview reports whether the editing surface renders inline
	// previews. Edit mode without live preview is strict source view.
	LivePreview() bool
}

// Decoration is one inline glyph widget over a span of a visible line. The
// span [Start, End) covers the original shortcode text, which Token retains
// so copy operations can recover the raw source.
type Decoration struct {
	Line  int
	Start int
	End   int
	Glyph string
	Token string
}

// LiveParams contains the live pass's tunable parameters.
type LiveParams struct {
	// RebuildsPerSecond caps how often full viewport rescans run during
	// bursts of changes. Superseded rebuilds are discarded regardless.
	RebuildsPerSecond int
}

// DefaultLiveParams returns the default configuration for LiveParams.
func DefaultLiveParams() LiveParams {
	return LiveParams{RebuildsPerSecond: 30}
}

// Live is the incremental render pass. The host invokes Rebuild on every
// content change, visible-range change, and mode change; each rebuild
// snapshots the currently visible lines and the newest rebuild wins.
//
// Resolution is synchronous against an in-memory glyph map that is
// populated lazily on the first rebuild. Until it is populated a rebuild
// produces no decorations; a later rebuild picks them up.
type Live struct {
	store *emoji.Store
	skin  func() emoji.SkinTone
	rl    ratelimit.Limiter

	mux        sync.Mutex
	glyphs     map[string]emoji.Emoji
	warming    bool
	generation uint64
	closed     bool
}

// NewLive creates the live pass. skin supplies the user's current tone
// preference per rebuild.
func NewLive(store *emoji.Store, skin func() emoji.SkinTone,
	params LiveParams) *Live {
	rate := params.RebuildsPerSecond
	if rate <= 0 {
		rate = DefaultLiveParams().RebuildsPerSecond
	}
	return &Live{
		store: store,
		skin:  skin,
		rl:    ratelimit.New(rate, ratelimit.WithoutSlack),
	}
}

// Rebuild computes decorations for the surface's visible lines and hands
// them to apply on an internal goroutine. If a newer Rebuild arrives before
// this one completes, this one's output is discarded and apply never runs;
// apply receiving an empty slice means "clear all decorations".
func (l *Live) Rebuild(s Surface, apply func([]Decoration)) {
	l.mux.Lock()
	if l.closed {
		l.mux.Unlock()
		return
	}
	l.generation++
	gen := l.generation
	l.mux.Unlock()

	go func() {
		l.rl.Take()
		decos := l.build(s)

		l.mux.Lock()
		stale := l.closed || gen != l.generation
		l.mux.Unlock()
		if stale {
			jww.TRACE.Printf(
				"Discarding superseded rebuild %d", gen)
			return
		}
		apply(decos)
	}()
}

// Close discards any in-flight rebuild and blocks future ones.
func (l *Live) Close() {
	l.mux.Lock()
	defer l.mux.Unlock()
	l.closed = true
}

// build scans the visible lines. Always returns a non-nil slice so the host
// can distinguish "clear decorations" from "no pass ran".
func (l *Live) build(s Surface) []Decoration {
	decos := []Decoration{}

	// Strict source view intentionally shows raw text.
	if s.EditMode() && !s.LivePreview() {
		return decos
	}

	glyphs := l.glyphMap()
	if glyphs == nil {
		return decos
	}

	tone := l.skin()
	first, last := s.VisibleRange()
	for n := first; n <= last; n++ {
		line := s.GetLine(n)
		if line == "" || boundary.SkipLine(line) {
			continue
		}
		for _, tok := range shortcode.Scan(line) {
			e, ok := glyphs[emoji.NormalizeID(tok.ID)]
			if !ok {
				continue
			}
			decos = append(decos, Decoration{
				Line:  n,
				Start: tok.Start,
				End:   tok.End,
				Glyph: e.Skin(tone),
				Token: tok.Match,
			})
		}
	}
	return decos
}

// glyphMap returns the pre-warmed id map, kicking off the one-time warm-up
// on first use. Returns nil while the map is not ready.
func (l *Live) glyphMap() map[string]emoji.Emoji {
	l.mux.Lock()
	defer l.mux.Unlock()
	if l.glyphs != nil {
		return l.glyphs
	}
	if !l.warming {
		l.warming = true
		go l.warm()
	}
	return nil
}

// warm builds the id map off the dataset. On dataset failure warming is
// re-armed so a cache clear can recover later rebuilds.
func (l *Live) warm() {
	emojis := l.store.Emojis()

	l.mux.Lock()
	defer l.mux.Unlock()
	l.warming = false
	if emojis == nil {
		return
	}
	m := make(map[string]emoji.Emoji, len(emojis))
	for _, e := range emojis {
		m[emoji.NormalizeID(e.ID)] = e
	}
	l.glyphs = m
	jww.DEBUG.Printf("Live pass glyph map warmed: %d entries", len(m))
}
