package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the treader config profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, used, err := loadConfig()
		if err != nil {
			return err
		}

		if used == "" {
			fmt.Println("No active config, using built-in defaults.")
			fmt.Println("Run `treader config init` to create one.")
			fmt.Println()
		} else {
			fmt.Printf("Loaded config from:\n  %s\n\n", used)
		}
		cfg.Print()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
