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
	"github.com/thedevsaddam/gojsonq"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

func init() {
	datasetCmd.Flags().StringP("find", "f", "",
		"Print the raw record for one emoji id")
	viper.BindPFlag("find", datasetCmd.Flags().Lookup("find"))

	rootCmd.AddCommand(datasetCmd)
}

// datasetCmd inspects a raw emoji-mart JSON file without going through the
// store, for debugging dataset problems.
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Inspect the emoji-mart JSON dataset given by --dataset",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := viper.GetString("dataset")
		if path == "" {
			jww.FATAL.Panicf("dataset requires --dataset")
		}

		if id := viper.GetString("find"); id != "" {
			record := gojsonq.New().File(path).
				Find("emojis." + id)
			if record == nil {
				fmt.Printf("No emoji %q in %s\n", id, path)
				return
			}
			fmt.Printf("%v\n", record)
			return
		}

		emojis := gojsonq.New().File(path).From("emojis").Count()
		categories := gojsonq.New().File(path).From("categories").
			Count()
		aliases := gojsonq.New().File(path).From("aliases").Count()
		fmt.Printf("%s: %d emojis, %d categories, %d aliases\n",
			path, emojis, categories, aliases)
	},
}
