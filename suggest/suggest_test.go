////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package suggest

import (
	"sync"
	"testing"
	"time"

	"gitlab.com/elixxir/emojipicker/emoji"
)

func testStore() *emoji.Store {
	return emoji.NewStore(func() (*emoji.Dataset, error) {
		return &emoji.Dataset{
			Emojis: []emoji.Emoji{
				{ID: "smile", Name: "grinning face",
					Skins:    []string{"😄"},
					Keywords: []string{"smile"}},
				{ID: "smirk", Name: "smirking face",
					Skins:    []string{"😏"},
					Keywords: []string{"smirk"}},
				{ID: "rocket", Name: "rocket",
					Skins:    []string{"🚀"},
					Keywords: []string{"space"}},
				{ID: "dog", Name: "dog face",
					Skins:    []string{"🐶"},
					Keywords: []string{"dog"}},
			},
			Categories: map[string][]string{
				"face":    {"smile", "smirk"},
				"animals": {"dog"},
				"travel":  {"rocket"},
			},
		}, nil
	}, nil)
}

// fakeState provides favorites and recents without the storage package.
type fakeState struct {
	favs    []string
	recents []string
}

func (f *fakeState) Favorites() []string { return f.favs }
func (f *fakeState) IsFavorite(id string) bool {
	for _, v := range f.favs {
		if v == id {
			return true
		}
	}
	return false
}
func (f *fakeState) IDs() []string { return f.recents }
func (f *fakeState) Contains(id string) bool {
	for _, v := range f.recents {
		if v == id {
			return true
		}
	}
	return false
}

// collect gathers deliveries thread-safely.
type collect struct {
	mux   sync.Mutex
	calls [][]Suggestion
}

func (c *collect) deliver(s []Suggestion) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.calls = append(c.calls, s)
}

func (c *collect) count() int {
	c.mux.Lock()
	defer c.mux.Unlock()
	return len(c.calls)
}

func (c *collect) last() []Suggestion {
	c.mux.Lock()
	defer c.mux.Unlock()
	if len(c.calls) == 0 {
		return nil
	}
	return c.calls[len(c.calls)-1]
}

func ids(suggestions []Suggestion) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Emoji.ID
	}
	return out
}

// Three rapid keystrokes inside the debounce window must dispatch exactly
// one search, for the last query.
func TestPipeline_Debounce(t *testing.T) {
	state := &fakeState{}
	p := NewPipeline(testStore(), state, state,
		Params{Debounce: 50 * time.Millisecond})
	defer p.Close()

	var c collect
	p.Request("s", c.deliver)
	time.Sleep(10 * time.Millisecond)
	p.Request("sm", c.deliver)
	time.Sleep(10 * time.Millisecond)
	p.Request("smi", c.deliver)

	time.Sleep(200 * time.Millisecond)
	if got := c.count(); got != 1 {
		t.Fatalf("Expected exactly 1 delivery, got %d.", got)
	}
	got := ids(c.last())
	expected := []string{"smile", "smirk"}
	if len(got) != 2 || got[0] != expected[0] || got[1] != expected[1] {
		t.Errorf("Wrong result for final query.\nexpected: %v\n"+
			"received: %v", expected, got)
	}
	for _, s := range c.last() {
		if !s.IsSearchResult {
			t.Errorf("%q not marked as search result.", s.Emoji.ID)
		}
	}
}

// An empty query must bypass the debounce window.
func TestPipeline_EmptyQueryImmediate(t *testing.T) {
	state := &fakeState{
		favs:    []string{"rocket"},
		recents: []string{"dog", "rocket"},
	}
	p := NewPipeline(testStore(), state, state,
		Params{Debounce: 10 * time.Second})
	defer p.Close()

	done := make(chan []Suggestion, 1)
	p.Request("", func(s []Suggestion) { done <- s })

	var result []Suggestion
	select {
	case result = <-done:
	case <-time.After(time.Second):
		t.Fatal("Empty query did not deliver promptly.")
	}

	// Favorites first, then recents not already listed, then browse
	// results excluding ids from the earlier sections.
	got := ids(result)
	if got[0] != "rocket" {
		t.Errorf("Favorites section not first: %v", got)
	}
	if !result[0].IsFavorite || !result[0].IsRecent {
		t.Errorf("rocket should be favorite and recent: %+v", result[0])
	}
	if got[1] != "dog" || !result[1].IsRecent {
		t.Errorf("Recents section wrong: %v", got)
	}

	seen := make(map[string]int)
	for _, id := range got {
		seen[id]++
		if seen[id] > 1 {
			t.Errorf("Duplicate id %q in final list: %v", id, got)
		}
	}
	// Browse section covers the remaining dataset
	if len(got) != 4 {
		t.Errorf("Expected all 4 emojis once, got %v", got)
	}
}

// Search results duplicating a favorite are excluded; the favorite entry
// itself stays.
func TestPipeline_DedupAgainstFavorites(t *testing.T) {
	state := &fakeState{favs: []string{"smile"}}
	p := NewPipeline(testStore(), state, state,
		Params{Debounce: time.Millisecond})
	defer p.Close()

	done := make(chan []Suggestion, 1)
	p.Request("smi", func(s []Suggestion) { done <- s })

	var result []Suggestion
	select {
	case result = <-done:
	case <-time.After(time.Second):
		t.Fatal("No delivery.")
	}

	got := ids(result)
	expected := []string{"smile", "smirk"}
	if len(got) != 2 || got[0] != expected[0] || got[1] != expected[1] {
		t.Fatalf("Wrong composition.\nexpected: %v\nreceived: %v",
			expected, got)
	}
	if !result[0].IsFavorite || result[0].IsSearchResult {
		t.Errorf("Favorite entry has wrong flags: %+v", result[0])
	}
	if !result[1].IsSearchResult {
		t.Errorf("Search entry has wrong flags: %+v", result[1])
	}
}

// Close before the debounce fires must suppress delivery entirely.
func TestPipeline_Close(t *testing.T) {
	state := &fakeState{}
	p := NewPipeline(testStore(), state, state,
		Params{Debounce: 30 * time.Millisecond})

	var c collect
	p.Request("smi", c.deliver)
	p.Close()

	time.Sleep(100 * time.Millisecond)
	if got := c.count(); got != 0 {
		t.Errorf("Delivery after Close: %d calls.", got)
	}

	// Requests after Close are ignored
	p.Request("", c.deliver)
	time.Sleep(50 * time.Millisecond)
	if got := c.count(); got != 0 {
		t.Errorf("Request after Close delivered: %d calls.", got)
	}
}

// A result still in flight when a newer request arrives must be discarded on
// arrival; only the newest delivery fires.
func TestPipeline_Supersede(t *testing.T) {
	gate := make(chan struct{})
	store := emoji.NewStore(func() (*emoji.Dataset, error) {
		<-gate
		return &emoji.Dataset{
			Emojis: []emoji.Emoji{
				{ID: "smile", Name: "grinning face",
					Skins: []string{"😄"}},
				{ID: "smirk", Name: "smirking face",
					Skins: []string{"😏"}},
			},
		}, nil
	}, nil)
	p := NewPipeline(store, nil, nil, Params{Debounce: time.Millisecond})
	defer p.Close()

	var first collect
	p.Request("smi", first.deliver)
	// Let the first dispatch fire and block inside the dataset load
	time.Sleep(50 * time.Millisecond)

	second := make(chan []Suggestion, 1)
	p.Request("smirk", func(s []Suggestion) { second <- s })
	close(gate)

	select {
	case result := <-second:
		got := ids(result)
		if len(got) != 1 || got[0] != "smirk" {
			t.Errorf("Wrong result for newest query: %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Newest request did not deliver.")
	}

	time.Sleep(100 * time.Millisecond)
	if got := first.count(); got != 0 {
		t.Errorf("Superseded request delivered %d times.", got)
	}
}

// Unresolvable favorite/recent ids are skipped without breaking the list.
func TestPipeline_UnknownIDs(t *testing.T) {
	state := &fakeState{
		favs:    []string{"no_such", "rocket"},
		recents: []string{"also_missing"},
	}
	p := NewPipeline(testStore(), state, state,
		Params{Debounce: time.Millisecond})
	defer p.Close()

	done := make(chan []Suggestion, 1)
	p.Request("", func(s []Suggestion) { done <- s })

	select {
	case result := <-done:
		got := ids(result)
		if got[0] != "rocket" {
			t.Errorf("Expected rocket first, got %v", got)
		}
		for _, id := range got {
			if id == "no_such" || id == "also_missing" {
				t.Errorf("Unresolvable id leaked: %v", got)
			}
		}
	case <-time.After(time.Second):
		t.Fatal("No delivery.")
	}
}
