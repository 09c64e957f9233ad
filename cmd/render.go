////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"

	"gitlab.com/elixxir/emojipicker/emoji"
	"gitlab.com/elixxir/emojipicker/render"
	"gitlab.com/elixxir/emojipicker/shortcode"
)

func init() {
	rootCmd.AddCommand(renderCmd)
}

// renderCmd runs the static pass over a file (or stdin) and prints the
// substituted text. Code fences, inline code, and math spans come through
// untouched, same as in the preview surfaces.
var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Substitute :shortcode: tokens in a document with glyphs",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var data []byte
		var err error
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			jww.FATAL.Panicf("Could not read input: %+v", err)
		}

		store := initStore()
		tone := skinTone()
		static := render.NewStatic(shortcode.NewResolver(store),
			func() emoji.SkinTone { return tone })

		root := render.NewElement("body",
			render.NewText(string(data)))
		n := static.Render(root)
		jww.DEBUG.Printf("Substituted %d tokens", n)

		fmt.Print(root.PlainText())
	},
}
