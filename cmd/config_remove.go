package cmd

import (
	"fmt"

	"github.com/CrazyPigHead/t-reader/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var forceRemove bool

var configRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Delete a book profile and its saved reading position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]

		c, err := config.LoadProfile(label)
		if err != nil {
			return err
		}

		if !forceRemove {
			what := fmt.Sprintf("Remove profile %q", label)
			if c.ChapterURL != "" {
				what += fmt.Sprintf(" (%s, chapter %d)", c.ChapterURL, c.CurrChapterNumber)
			}
			if active, _ := config.CurrentLabel(); active == label {
				what += ", the active one"
			}

			prompt := promptui.Prompt{Label: what, IsConfirm: true}
			if _, err := prompt.Run(); err != nil {
				fmt.Println("Aborted.")
				return nil
			}
		}

		fellBack, err := config.RemoveConfig(label)
		if err != nil {
			return err
		}

		fmt.Printf("Removed profile %q\n", label)
		if fellBack {
			fmt.Printf("Active profile is now %q\n", config.DefaultLabel)
		}
		return nil
	},
}

func init() {
	configRemoveCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "remove without asking")

	configCmd.AddCommand(configRemoveCmd)
}
