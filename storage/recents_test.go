////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package storage

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"gitlab.com/elixxir/ekv"
)

func TestMigrateRecents_Canonical(t *testing.T) {
	data := []byte(`["rocket","smile","wave"]`)
	ids, migrated := MigrateRecents(data)
	if migrated {
		t.Error("Canonical data must not be flagged as migrated.")
	}
	expected := []string{"rocket", "smile", "wave"}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("Wrong ids.\nexpected: %v\nreceived: %v", expected, ids)
	}

	// Idempotence: re-running on the result is a no-op.
	again, _ := json.Marshal(ids)
	ids2, migrated2 := MigrateRecents(again)
	if migrated2 || !reflect.DeepEqual(ids2, ids) {
		t.Errorf("Migration is not idempotent: %v (migrated=%t)",
			ids2, migrated2)
	}
}

func TestMigrateRecents_Legacy(t *testing.T) {
	data := []byte(`[
		{"id":"rocket","name":"rocket","native":"🚀"},
		{"name":"waving hand"},
		{"native":"😀"},
		{"id":""}
	]`)
	ids, migrated := MigrateRecents(data)
	if !migrated {
		t.Error("Legacy object data must be flagged as migrated.")
	}
	expected := []string{"rocket", "waving hand"}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("Wrong ids.\nexpected: %v\nreceived: %v", expected, ids)
	}
}

func TestMigrateRecents_Garbage(t *testing.T) {
	ids, migrated := MigrateRecents([]byte(`{"not":"an array"}`))
	if len(ids) != 0 || migrated {
		t.Errorf("Garbage data should yield nothing, got %v", ids)
	}
	ids, _ = MigrateRecents([]byte(`not json at all`))
	if len(ids) != 0 {
		t.Errorf("Non-JSON data should yield nothing, got %v", ids)
	}
}

func TestCleanRecents(t *testing.T) {
	in := []string{
		"rocket", "", "rocket", strings.Repeat("x", 100), "smile"}
	expected := []string{"rocket", "smile"}
	if got := CleanRecents(in); !reflect.DeepEqual(got, expected) {
		t.Errorf("CleanRecents:\nexpected: %v\nreceived: %v",
			expected, got)
	}
}

func TestRecentList_Add(t *testing.T) {
	kv := ekv.MakeMemstore()
	r := LoadRecents(kv, nil)

	r.Add("a", MinRecentCount)
	r.Add("b", MinRecentCount)
	r.Add("c", MinRecentCount)
	expected := []string{"c", "b", "a"}
	if got := r.IDs(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Wrong order.\nexpected: %v\nreceived: %v",
			expected, got)
	}

	// Re-adding moves to the front without duplicating
	r.Add("a", MinRecentCount)
	expected = []string{"a", "c", "b"}
	if got := r.IDs(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Re-add did not move to front.\nexpected: %v\n"+
			"received: %v", expected, got)
	}

	// Cap is enforced and the newest entry is always index 0
	for _, id := range []string{"d", "e", "f", "g", "h"} {
		r.Add(id, MinRecentCount)
	}
	got := r.IDs()
	if len(got) != MinRecentCount {
		t.Errorf("List length %d exceeds cap %d.",
			len(got), MinRecentCount)
	}
	if got[0] != "h" {
		t.Errorf("Most recent selection is %q, not at index 0.", got[0])
	}

	// The persisted copy round-trips through a fresh load
	r2 := LoadRecents(kv, nil)
	if !reflect.DeepEqual(r2.IDs(), got) {
		t.Errorf("Reloaded list differs.\nexpected: %v\nreceived: %v",
			got, r2.IDs())
	}
}

func TestLoadRecents_LegacyStore(t *testing.T) {
	kv := ekv.MakeMemstore()
	legacy := []byte(`[{"id":"rocket"},{"id":"smile"},{"bogus":1}]`)
	if err := kv.SetBytes("emojiPicker/recents", legacy); err != nil {
		t.Fatalf("Failed to seed store: %+v", err)
	}

	r := LoadRecents(kv, nil)
	expected := []string{"rocket", "smile"}
	if !reflect.DeepEqual(r.IDs(), expected) {
		t.Errorf("Legacy load failed.\nexpected: %v\nreceived: %v",
			expected, r.IDs())
	}

	// The migrated canonical shape must have been written back
	data, err := kv.GetBytes("emojiPicker/recents")
	if err != nil {
		t.Fatalf("Failed to read back store: %+v", err)
	}
	var ids []string
	if err = json.Unmarshal(data, &ids); err != nil {
		t.Fatalf("Store does not hold canonical shape: %s", data)
	}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("Wrong persisted ids: %v", ids)
	}
}

func TestRecentList_Clear(t *testing.T) {
	kv := ekv.MakeMemstore()
	r := LoadRecents(kv, nil)
	r.Add("a", MinRecentCount)
	r.Clear()
	if got := r.IDs(); len(got) != 0 {
		t.Errorf("Clear left %v behind.", got)
	}
	if r.Contains("a") {
		t.Error("Contains reports a cleared id.")
	}
}
