////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package storage

import (
	"gitlab.com/elixxir/ekv"
)

// settingsKey is the settings store key. It is deliberately separate from
// the recents namespace.
const settingsKey = "emojiPicker/settings"

// EkvSettings adapts an ekv.KeyValue to the SettingsIO collaborator for
// hosts (and the CLI) that keep plugin settings in the same kind of store as
// everything else.
type EkvSettings struct {
	kv ekv.KeyValue
}

// NewEkvSettings creates the adapter.
func NewEkvSettings(kv ekv.KeyValue) *EkvSettings {
	return &EkvSettings{kv: kv}
}

// LoadSettings returns the stored blob; a missing key is not an error.
func (e *EkvSettings) LoadSettings() ([]byte, error) {
	data, err := e.kv.GetBytes(settingsKey)
	if err != nil {
		if !ekv.Exists(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// SaveSettings stores the blob.
func (e *EkvSettings) SaveSettings(data []byte) error {
	return e.kv.SetBytes(settingsKey, data)
}
