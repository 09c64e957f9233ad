////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"gitlab.com/elixxir/emojipicker/event"
	"gitlab.com/elixxir/emojipicker/storage"
	"gitlab.com/elixxir/emojipicker/suggest"
)

func init() {
	suggestCmd.Flags().IntP("max", "m", 20,
		"Maximum number of suggestions to print")
	viper.BindPFlag("max", suggestCmd.Flags().Lookup("max"))

	rootCmd.AddCommand(suggestCmd)
}

// suggestCmd runs one query through the full pipeline, favorites and recents
// included, against the session state.
var suggestCmd = &cobra.Command{
	Use:   "suggest [query]",
	Short: "Print the suggestion list for a query (empty query browses)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		events := event.NewManager()
		defer events.Stop()
		events.Register("cli", func(n event.Notice) {
			fmt.Printf("[%s] %s\n", n.Level, n.Message)
		})

		kv := initKV()
		settings := storage.LoadSettings(
			storage.NewEkvSettings(kv), events)
		recents := storage.LoadRecents(kv, events)

		pipeline := suggest.NewPipeline(initStore(), settings,
			recents, suggest.DefaultParams())
		defer pipeline.Close()

		done := make(chan []suggest.Suggestion, 1)
		pipeline.Request(query, func(s []suggest.Suggestion) {
			done <- s
		})
		suggestions := <-done
		jww.DEBUG.Printf("Pipeline returned %d suggestions for %q",
			len(suggestions), query)

		max := viper.GetInt("max")
		tone := skinTone()
		for i, s := range suggestions {
			if i >= max {
				break
			}
			var tags string
			if s.IsFavorite {
				tags += " [favorite]"
			}
			if s.IsRecent {
				tags += " [recent]"
			}
			fmt.Printf("%s  :%s:%s\n",
				s.Emoji.Skin(tone), s.Emoji.ID, tags)
		}
	},
}
