////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package cmd

import (
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"gitlab.com/elixxir/ekv"

	"gitlab.com/elixxir/emojipicker/emoji"
)

// initStore builds the emoji store from either the --dataset emoji-mart
// file or the built-in gomoji dataset.
func initStore() *emoji.Store {
	if path := viper.GetString("dataset"); path != "" {
		jww.DEBUG.Printf("Using emoji-mart dataset at %s", path)
		return emoji.NewStore(emoji.MartFileSource(path), nil)
	}
	return emoji.NewStore(emoji.GomojiSource(), nil)
}

// initKV opens the session storage. An empty --session runs against an
// in-memory store that is discarded on exit.
func initKV() ekv.KeyValue {
	dir := viper.GetString("session")
	if dir == "" {
		jww.DEBUG.Printf("No session directory; state is in-memory")
		return ekv.MakeMemstore()
	}
	kv, err := ekv.NewFilestore(dir, viper.GetString("password"))
	if err != nil {
		jww.FATAL.Panicf("Could not open session at %s: %+v", dir, err)
	}
	return kv
}

// skinTone reads and bounds the --skin flag.
func skinTone() emoji.SkinTone {
	tone := emoji.SkinTone(viper.GetUint("skin"))
	if !tone.Valid() {
		jww.WARN.Printf("Skin tone %d out of range, using default",
			tone)
		return emoji.Default
	}
	return tone
}
