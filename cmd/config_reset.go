package cmd

import (
	"fmt"

	"github.com/CrazyPigHead/t-reader/internal/config"

	"github.com/spf13/cobra"
)

var flagResetKeepBook bool

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the current config to default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		activePath, err := config.ActiveConfigPath()
		if err != nil {
			return err
		}

		def := config.DefaultConfig()
		if flagResetKeepBook {
			cur, _, err := config.LoadMerged(config.Options{})
			if err != nil {
				return err
			}
			def.ChapterURL = cur.ChapterURL
			def.CurrChapterNumber = cur.CurrChapterNumber
			def.CurrPageNumber = cur.CurrPageNumber
		}

		if err := config.SaveYAML(def, activePath); err != nil {
			return err
		}

		fmt.Printf("Reset active config: %s\n", activePath)
		return nil
	},
}

func init() {
	configResetCmd.Flags().BoolVar(&flagResetKeepBook, "keep-book", false, "keep the book url and reading position")

	configCmd.AddCommand(configResetCmd)
}
