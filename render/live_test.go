////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package render

import (
	"strings"
	"testing"
	"time"

	"gitlab.com/elixxir/emojipicker/emoji"
)

// fakeSurface is a scriptable live surface.
type fakeSurface struct {
	lines       []string
	first, last int
	editMode    bool
	livePreview bool
}

func (f *fakeSurface) VisibleRange() (int, int) { return f.first, f.last }
func (f *fakeSurface) GetLine(n int) string {
	if n < 0 || n >= len(f.lines) {
		return ""
	}
	return f.lines[n]
}
func (f *fakeSurface) EditMode() bool    { return f.editMode }
func (f *fakeSurface) LivePreview() bool { return f.livePreview }

// rebuildAndWait drives Rebuild until the warm-up has completed and a pass
// delivers, or times out.
func rebuildAndWait(t *testing.T, l *Live, s Surface) []Decoration {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		done := make(chan []Decoration, 1)
		l.Rebuild(s, func(d []Decoration) { done <- d })
		select {
		case d := <-done:
			if len(d) > 0 {
				return d
			}
		case <-time.After(time.Second):
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("No decorations produced before deadline.")
	return nil
}

func TestLive_Rebuild(t *testing.T) {
	s := &fakeSurface{
		lines: []string{
			"hello :rocket: world",
			"    :rocket: indented code",
			"inline `:rocket:` code",
			"two :smile: and :wave: here",
			":rocket: below the viewport",
		},
		first:       0,
		last:        3,
		editMode:    true,
		livePreview: true,
	}
	l := NewLive(testStore(), func() emoji.SkinTone { return emoji.Default },
		DefaultLiveParams())
	defer l.Close()

	decos := rebuildAndWait(t, l, s)

	if len(decos) != 3 {
		t.Fatalf("Expected 3 decorations, got %d: %+v",
			len(decos), decos)
	}
	first := decos[0]
	if first.Line != 0 || first.Glyph != "🚀" ||
		first.Token != ":rocket:" {
		t.Errorf("Bad first decoration: %+v", first)
	}
	if got := s.lines[first.Line][first.Start:first.End]; got != ":rocket:" {
		t.Errorf("Span does not cover the token: %q", got)
	}
	for _, d := range decos {
		if d.Line == 1 || d.Line == 2 {
			t.Errorf("Protected line decorated: %+v", d)
		}
		if d.Line == 4 {
			t.Errorf("Invisible line decorated: %+v", d)
		}
	}
	if decos[1].Glyph != "😄" || decos[2].Glyph != "👋" {
		t.Errorf("Wrong glyphs: %+v", decos[1:])
	}
}

// Strict source view (edit mode without live preview) must produce nothing,
// even with a warmed map.
func TestLive_StrictSourceMode(t *testing.T) {
	s := &fakeSurface{
		lines:       []string{":rocket:"},
		editMode:    true,
		livePreview: true,
	}
	l := NewLive(testStore(), func() emoji.SkinTone { return emoji.Default },
		DefaultLiveParams())
	defer l.Close()

	// Warm up via a decorated pass first
	rebuildAndWait(t, l, s)

	s.livePreview = false
	done := make(chan []Decoration, 1)
	l.Rebuild(s, func(d []Decoration) { done <- d })
	select {
	case d := <-done:
		if len(d) != 0 {
			t.Errorf("Strict source mode produced decorations: %+v", d)
		}
	case <-time.After(time.Second):
		t.Fatal("Rebuild did not deliver.")
	}

	// A read-only (non-edit) surface decorates again
	s.editMode = false
	if d := rebuildAndWait(t, l, s); len(d) != 1 {
		t.Errorf("Read-only mode should decorate: %+v", d)
	}
}

func TestLive_SkinTone(t *testing.T) {
	s := &fakeSurface{lines: []string{"hi :wave:"}}
	l := NewLive(testStore(), func() emoji.SkinTone { return emoji.Dark },
		DefaultLiveParams())
	defer l.Close()

	decos := rebuildAndWait(t, l, s)
	if len(decos) != 1 || decos[0].Glyph != "👋🏿" {
		t.Errorf("Tone not applied: %+v", decos)
	}
}

// After Close, rebuilds neither run nor deliver.
func TestLive_Close(t *testing.T) {
	s := &fakeSurface{lines: []string{":rocket:"}}
	l := NewLive(testStore(), func() emoji.SkinTone { return emoji.Default },
		DefaultLiveParams())
	l.Close()

	delivered := make(chan struct{}, 1)
	l.Rebuild(s, func([]Decoration) { delivered <- struct{}{} })
	select {
	case <-delivered:
		t.Error("Rebuild delivered after Close.")
	case <-time.After(100 * time.Millisecond):
	}
}

// A pass superseded by a newer Rebuild before it completes must never
// deliver; only the newest apply fires.
func TestLive_Supersede(t *testing.T) {
	s := &fakeSurface{lines: []string{"hi :rocket:"}}
	l := NewLive(testStore(), func() emoji.SkinTone { return emoji.Default },
		LiveParams{RebuildsPerSecond: 2})
	defer l.Close()

	// Warm the glyph map and drain the limiter's initial slot so the next
	// pass is paced, guaranteeing the second Rebuild lands while the first
	// is still pending.
	rebuildAndWait(t, l, s)

	first := make(chan struct{}, 1)
	second := make(chan []Decoration, 1)
	l.Rebuild(s, func([]Decoration) { first <- struct{}{} })
	l.Rebuild(s, func(d []Decoration) { second <- d })

	select {
	case d := <-second:
		if len(d) != 1 || d[0].Token != ":rocket:" {
			t.Errorf("Wrong final decorations: %+v", d)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Newest rebuild did not deliver.")
	}

	select {
	case <-first:
		t.Error("Superseded rebuild delivered.")
	case <-time.After(100 * time.Millisecond):
	}
}

// Unknown tokens produce no decoration but do not block others on the line.
func TestLive_UnknownToken(t *testing.T) {
	s := &fakeSurface{
		lines: []string{":nope: then :rocket:"},
	}
	l := NewLive(testStore(), func() emoji.SkinTone { return emoji.Default },
		DefaultLiveParams())
	defer l.Close()

	decos := rebuildAndWait(t, l, s)
	if len(decos) != 1 || decos[0].Token != ":rocket:" {
		t.Errorf("Wrong decorations: %+v", decos)
	}
	if !strings.HasPrefix(s.lines[0][decos[0].Start:], ":rocket:") {
		t.Errorf("Offset drifted: %+v", decos[0])
	}
}
