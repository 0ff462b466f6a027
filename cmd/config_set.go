package cmd

import (
	"fmt"
	"strings"

	"github.com/CrazyPigHead/t-reader/internal/config"

	"github.com/spf13/cobra"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting of the current or --profile config",
	Long: "Change one setting of the current or --profile config.\n\nKeys:\n  " +
		strings.Join(config.Keys(), "\n  "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := flagProfile
		if label == "" {
			var err error
			label, err = config.CurrentLabel()
			if err != nil {
				return fmt.Errorf("no active config, run `treader config init` first: %w", err)
			}
		}

		path, err := config.ConfigPathByLabel(label)
		if err != nil {
			return err
		}

		if err := config.SetInFile(path, args[0], args[1]); err != nil {
			return err
		}

		fmt.Printf("%s: %s = %q\n", label, args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}
