////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

// Package picker ties the trigger engine, the suggestion pipeline, and the
// durable state together behind the two callbacks the host overlay consumes:
// keystroke evaluation and selection commit.
package picker

import (
	"fmt"
	"sync"

	jww "github.com/spf13/jwalterweatherman"

	"gitlab.com/elixxir/emojipicker/editor"
	"gitlab.com/elixxir/emojipicker/emoji"
	"gitlab.com/elixxir/emojipicker/event"
	"gitlab.com/elixxir/emojipicker/storage"
	"gitlab.com/elixxir/emojipicker/suggest"
	"gitlab.com/elixxir/emojipicker/trigger"
)

// Picker orchestrates one suggestion surface. Create with New and release
// with Close. The host attaches and detaches the active buffer as editor
// focus moves; all operations tolerate having no buffer attached.
type Picker struct {
	store    *emoji.Store
	pipeline *suggest.Pipeline
	settings *storage.Settings
	recents  *storage.RecentList
	events   *event.Manager

	mux     sync.Mutex
	buf     editor.Buffer
	session trigger.Context
	active  bool
}

// New creates a Picker over the given collaborators. events may be nil.
func New(store *emoji.Store, settings *storage.Settings,
	recents *storage.RecentList, events *event.Manager,
	params suggest.Params) *Picker {
	return &Picker{
		store:    store,
		pipeline: suggest.NewPipeline(store, settings, recents, params),
		settings: settings,
		recents:  recents,
		events:   events,
	}
}

// SetBuffer attaches the host's active text buffer. Pass nil when no editor
// has focus; insertion then degrades to a no-op.
func (p *Picker) SetBuffer(b editor.Buffer) {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.buf = b
	p.active = false
}

// Keystroke re-evaluates the trigger state from the attached buffer's cursor
// line. When a session is active it requests suggestions, delivering them to
// deliver on an internal goroutine, and returns true so the host keeps its
// overlay open. Each keystroke is evaluated from scratch; there is no sticky
// session state beyond the last matched span.
func (p *Picker) Keystroke(deliver func([]suggest.Suggestion)) bool {
	p.mux.Lock()
	buf := p.buf
	p.mux.Unlock()
	if buf == nil {
		return false
	}

	cur := buf.Cursor()
	ctx, ok := trigger.Detect(buf.GetLine(cur.Line), cur.Ch)

	p.mux.Lock()
	p.session = ctx
	p.active = ok
	p.mux.Unlock()

	if !ok {
		return false
	}
	p.pipeline.Request(ctx.Query, deliver)
	return true
}

// Browse opens the picker in its empty-query state: favorites first, then
// recents, then the category listing. Suggestions arrive via deliver on an
// internal goroutine.
func (p *Picker) Browse(deliver func([]suggest.Suggestion)) {
	p.mux.Lock()
	p.session = trigger.Context{}
	p.active = false
	p.mux.Unlock()

	p.pipeline.Request("", deliver)
}

// Select commits the chosen suggestion to the document. An active trigger
// session replaces the matched `:query` span; otherwise the text is inserted
// at the cursor. The selection is recorded in the recent list regardless of
// insertion format. With no buffer attached the document is untouched and an
// informational notice is raised.
func (p *Picker) Select(s suggest.Suggestion) {
	p.mux.Lock()
	buf := p.buf
	ctx := p.session
	active := p.active
	p.session = trigger.Context{}
	p.active = false
	p.mux.Unlock()

	if buf == nil {
		jww.INFO.Printf("No active editor; dropping insertion of %q",
			s.Emoji.ID)
		if p.events != nil {
			p.events.Notify(event.Info, "picker",
				"No active editor to insert into")
		}
		return
	}

	text := p.insertionText(s.Emoji)
	if active {
		cur := buf.Cursor()
		buf.ReplaceRange(text,
			editor.Position{Line: cur.Line, Ch: ctx.Start},
			editor.Position{Line: cur.Line, Ch: ctx.End})
	} else {
		buf.ReplaceSelection(text)
	}

	p.recents.Add(s.Emoji.ID, p.settings.RecentCount())
}

// insertionText renders e per the configured insertion format. A unicode
// glyph that fails validation (multi-grapheme, or unknown to the dataset)
// falls back to the portable shortcode form rather than inserting junk.
func (p *Picker) insertionText(e emoji.Emoji) string {
	code := fmt.Sprintf(":%s:", e.ID)
	if p.settings.Format() == storage.FormatShortcode {
		return code
	}

	glyph := e.Skin(p.settings.Skin())
	if err := emoji.ValidateGlyph(glyph); err != nil {
		jww.WARN.Printf("Glyph %q for %q failed validation, "+
			"inserting shortcode: %+v", glyph, e.ID, err)
		return code
	}
	return glyph
}

// ToggleFavorite flips id's membership in the favorites set and returns the
// new state.
func (p *Picker) ToggleFavorite(id string) bool {
	return p.settings.ToggleFavorite(id)
}

// Close cancels pending suggestion work. The picker must not be used after.
func (p *Picker) Close() {
	p.pipeline.Close()
}
