////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

// Package storage persists the plugin's only durable state: the recents list
// (local key-value store) and the plugin settings (host settings store).
// Every failure path degrades to in-memory state; persistence errors are
// logged and surfaced as notices, never returned to the editing path.
package storage

import (
	"encoding/json"
	"sync"

	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/ekv"

	"gitlab.com/elixxir/emojipicker/event"
)

// recentsKey is the namespaced local-store key, distinct from the settings
// store.
const recentsKey = "emojiPicker/recents"

// maxRecentIDLen bounds a stored id during cleanup; anything longer is
// malformed legacy data.
const maxRecentIDLen = 64

// Bounds for the configurable recents cap.
const (
	MinRecentCount = 5
	MaxRecentCount = 50
)

const recentsNotice = "recents"

// RecentList is the ordered most-recent-first list of selected emoji ids,
// unique, capped, and persisted to the local key-value store on every
// mutation.
type RecentList struct {
	mux    sync.Mutex
	kv     ekv.KeyValue
	events *event.Manager
	ids    []string
}

// LoadRecents reads the recents list from the local store, migrating legacy
// data and dropping malformed entries. A failed load yields an empty list so
// plugin startup is never blocked.
func LoadRecents(kv ekv.KeyValue, events *event.Manager) *RecentList {
	r := &RecentList{kv: kv, events: events}

	data, err := kv.GetBytes(recentsKey)
	if err != nil || len(data) == 0 {
		// Nothing stored yet or the store is unreadable; both start
		// empty.
		if err != nil && ekv.Exists(err) {
			jww.WARN.Printf("Failed to load recents: %+v", err)
		}
		return r
	}

	ids, migrated := MigrateRecents(data)
	r.ids = CleanRecents(ids)
	if migrated || len(r.ids) != len(ids) {
		jww.INFO.Printf("Recents migrated/cleaned on load: "+
			"%d entries kept of %d", len(r.ids), len(ids))
		r.persist()
	}
	return r
}

// MigrateRecents converts stored recents JSON to the canonical id-string
// list. The legacy shape is an array of full emoji objects; the canonical
// shape is an array of id strings. Detection is by format, not by a version
// flag, so running it on already-migrated data is a no-op. The second return
// is true when a legacy shape was converted.
func MigrateRecents(data []byte) ([]string, bool) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err == nil {
		return ids, false
	}

	// Legacy shape: array of objects carrying at least an id or a name.
	var objs []map[string]interface{}
	if err := json.Unmarshal(data, &objs); err != nil {
		jww.WARN.Printf("Recents data is neither id strings nor "+
			"legacy objects; discarding %d bytes", len(data))
		return nil, false
	}
	ids = make([]string, 0, len(objs))
	for _, obj := range objs {
		if id, ok := obj["id"].(string); ok && id != "" {
			ids = append(ids, id)
			continue
		}
		// The name doubles as a legacy identity key.
		if name, ok := obj["name"].(string); ok && name != "" {
			ids = append(ids, name)
		}
	}
	return ids, true
}

// CleanRecents drops empty, over-long, and duplicate entries. It never
// fails; a bad item is simply not kept.
func CleanRecents(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || len(id) > maxRecentIDLen {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Add records a selection: id moves to the front, duplicates are removed,
// and the list is trimmed to cap. The list is persisted immediately,
// best-effort.
func (r *RecentList) Add(id string, cap int) {
	if id == "" {
		return
	}
	if cap < MinRecentCount {
		cap = MinRecentCount
	} else if cap > MaxRecentCount {
		cap = MaxRecentCount
	}

	r.mux.Lock()
	defer r.mux.Unlock()

	ids := make([]string, 0, len(r.ids)+1)
	ids = append(ids, id)
	for _, existing := range r.ids {
		if existing != id {
			ids = append(ids, existing)
		}
	}
	if len(ids) > cap {
		ids = ids[:cap]
	}
	r.ids = ids
	r.persist()
}

// Contains reports membership.
func (r *RecentList) Contains(id string) bool {
	r.mux.Lock()
	defer r.mux.Unlock()
	for _, existing := range r.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// IDs returns a copy of the list, most recent first.
func (r *RecentList) IDs() []string {
	r.mux.Lock()
	defer r.mux.Unlock()
	return append([]string(nil), r.ids...)
}

// Clear empties the list and removes the stored key.
func (r *RecentList) Clear() {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.ids = nil
	if err := r.kv.Delete(recentsKey); err != nil {
		jww.WARN.Printf("Failed to delete recents: %+v", err)
	}
}

// persist writes the canonical shape. Failure is logged and reported;
// in-memory state stays authoritative. Callers must hold the mutex.
func (r *RecentList) persist() {
	data, err := json.Marshal(r.ids)
	if err != nil {
		jww.FATAL.Panicf("Could not marshal recents: %+v", err)
	}
	if err = r.kv.SetBytes(recentsKey, data); err != nil {
		jww.WARN.Printf("Failed to persist recents: %+v", err)
		if r.events != nil {
			r.events.Notify(event.Info, recentsNotice,
				"Could not save recent emojis: %s", err)
		}
	}
}
