////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package storage

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/golang-collections/collections/set"
	jww "github.com/spf13/jwalterweatherman"

	"gitlab.com/elixxir/emojipicker/emoji"
	"gitlab.com/elixxir/emojipicker/event"
)

const settingsNotice = "settings"

// InsertionFormat governs what text a selection writes into the document.
type InsertionFormat string

const (
	FormatUnicode   InsertionFormat = "unicode"
	FormatShortcode InsertionFormat = "shortcode"
)

// SettingsIO is the host's settings persistence collaborator. Both calls are
// best-effort; the Settings layer catches every error.
type SettingsIO interface {
	// LoadSettings returns the stored settings JSON blob, or nil when
	// nothing is stored.
	LoadSettings() ([]byte, error)

	// SaveSettings stores the settings JSON blob.
	SaveSettings(data []byte) error
}

// settingsBlob is the persisted settings shape.
type settingsBlob struct {
	Skin            uint8           `json:"skin"`
	RecentCount     int             `json:"recentCount"`
	Favorites       []string        `json:"favorites"`
	InsertionFormat InsertionFormat `json:"insertionFormat"`
}

// DefaultRecentCount is used until the user configures otherwise.
const DefaultRecentCount = 20

// Settings holds the plugin settings, including the favorites set. All
// mutators persist immediately and tolerate persistence failure by logging
// and continuing with in-memory state.
type Settings struct {
	mux         sync.Mutex
	io          SettingsIO
	events      *event.Manager
	warnedSave  bool
	skin        emoji.SkinTone
	recentCount int
	favorites   *set.Set
	format      InsertionFormat
}

// LoadSettings reads settings through the host collaborator, falling back to
// defaults on any failure.
func LoadSettings(io SettingsIO, events *event.Manager) *Settings {
	s := &Settings{
		io:          io,
		events:      events,
		skin:        emoji.Default,
		recentCount: DefaultRecentCount,
		favorites:   set.New(),
		format:      FormatUnicode,
	}

	data, err := io.LoadSettings()
	if err != nil {
		jww.WARN.Printf("Failed to load settings, using defaults: %+v",
			err)
		return s
	}
	if len(data) == 0 {
		return s
	}

	var blob settingsBlob
	if err = json.Unmarshal(data, &blob); err != nil {
		jww.WARN.Printf("Malformed settings, using defaults: %+v", err)
		return s
	}

	if tone := emoji.SkinTone(blob.Skin); tone.Valid() {
		s.skin = tone
	}
	if blob.RecentCount >= MinRecentCount &&
		blob.RecentCount <= MaxRecentCount {
		s.recentCount = blob.RecentCount
	}
	for _, id := range blob.Favorites {
		if id != "" {
			s.favorites.Insert(id)
		}
	}
	if blob.InsertionFormat == FormatUnicode ||
		blob.InsertionFormat == FormatShortcode {
		s.format = blob.InsertionFormat
	}
	return s
}

// Skin returns the user's skin tone preference.
func (s *Settings) Skin() emoji.SkinTone {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.skin
}

// SetSkin updates and persists the skin tone preference. Invalid tones are
// ignored.
func (s *Settings) SetSkin(tone emoji.SkinTone) {
	if !tone.Valid() {
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.skin = tone
	s.persist()
}

// RecentCount returns the configured recents cap.
func (s *Settings) RecentCount() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.recentCount
}

// SetRecentCount clamps n into [MinRecentCount, MaxRecentCount], updates,
// and persists.
func (s *Settings) SetRecentCount(n int) {
	if n < MinRecentCount {
		n = MinRecentCount
	} else if n > MaxRecentCount {
		n = MaxRecentCount
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.recentCount = n
	s.persist()
}

// Format returns the insertion format.
func (s *Settings) Format() InsertionFormat {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.format
}

// SetFormat updates and persists the insertion format. Unknown values are
// ignored.
func (s *Settings) SetFormat(f InsertionFormat) {
	if f != FormatUnicode && f != FormatShortcode {
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.format = f
	s.persist()
}

// IsFavorite reports whether id is starred.
func (s *Settings) IsFavorite(id string) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.favorites.Has(id)
}

// ToggleFavorite stars or unstars an id and persists. Returns true when the
// id is a favorite after the call.
func (s *Settings) ToggleFavorite(id string) bool {
	if id == "" {
		return false
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	var starred bool
	if s.favorites.Has(id) {
		s.favorites.Remove(id)
	} else {
		s.favorites.Insert(id)
		starred = true
	}
	s.persist()
	return starred
}

// Favorites returns the starred ids, sorted for stable presentation (the
// set itself is unordered).
func (s *Settings) Favorites() []string {
	s.mux.Lock()
	defer s.mux.Unlock()
	out := make([]string, 0, s.favorites.Len())
	s.favorites.Do(func(item interface{}) {
		out = append(out, item.(string))
	})
	sort.Strings(out)
	return out
}

// persist writes the settings blob through the host collaborator. The first
// failure raises a user notice; later ones only log. Callers must hold the
// mutex.
func (s *Settings) persist() {
	out := make([]string, 0, s.favorites.Len())
	s.favorites.Do(func(item interface{}) {
		out = append(out, item.(string))
	})
	sort.Strings(out)

	blob := settingsBlob{
		Skin:            uint8(s.skin),
		RecentCount:     s.recentCount,
		Favorites:       out,
		InsertionFormat: s.format,
	}
	data, err := json.Marshal(blob)
	if err != nil {
		jww.FATAL.Panicf("Could not marshal settings: %+v", err)
	}
	if err = s.io.SaveSettings(data); err != nil {
		jww.WARN.Printf("Failed to save settings: %+v", err)
		if !s.warnedSave && s.events != nil {
			s.warnedSave = true
			s.events.Notify(event.Warning, settingsNotice,
				"Could not save emoji picker settings: %s", err)
		}
	}
}
