package cmd

import (
	"fmt"
	"strings"

	"github.com/CrazyPigHead/t-reader/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configRenameCmd = &cobra.Command{
	Use:   "rename <old_label> [new_label]",
	Short: "Rename an existing labeled config, asking for the new label if omitted",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldLabel := args[0]

		var newLabel string
		if len(args) == 2 {
			newLabel = args[1]
		} else {
			prompt := promptui.Prompt{
				Label:   "New label",
				Default: oldLabel,
				Validate: func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("label cannot be empty")
					}
					return nil
				},
			}

			v, err := prompt.Run()
			if err != nil {
				return fmt.Errorf("rename cancelled")
			}
			newLabel = strings.TrimSpace(v)
		}

		if newLabel == oldLabel {
			fmt.Println("Label unchanged.")
			return nil
		}

		if err := config.RenameConfig(oldLabel, newLabel); err != nil {
			return err
		}
		fmt.Printf("Renamed config %q to %q\n", oldLabel, newLabel)

		return nil
	},
}

func init() {
	configCmd.AddCommand(configRenameCmd)
}
