package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/CrazyPigHead/t-reader/internal/config"

	"github.com/spf13/cobra"
)

var configEditCmd = &cobra.Command{
	Use:   "edit [label]",
	Short: "Edit a book profile (book url, position, rule) in $EDITOR",
	Long: `Open the active profile, or the one named by label, in $EDITOR
(nvim when unset). The file is checked after the editor exits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := flagProfile
		if len(args) == 1 {
			label = args[0]
		}
		if label == "" {
			var err error
			if label, err = config.CurrentLabel(); err != nil {
				return fmt.Errorf("no active profile, run `treader config init` first: %w", err)
			}
		}

		path, err := config.ConfigPathByLabel(label)
		if err != nil {
			return err
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "nvim"
		}

		ed := exec.Command(editor, path)
		ed.Stdin, ed.Stdout, ed.Stderr = os.Stdin, os.Stdout, os.Stderr
		if err := ed.Run(); err != nil {
			return fmt.Errorf("%s: %w", editor, err)
		}

		c, err := config.LoadProfile(label)
		if err != nil {
			return fmt.Errorf("profile %q no longer parses, fix it with `treader config edit %s`: %w", label, label, err)
		}
		if c.ChapterURL != "" {
			fmt.Printf("%s: %s, chapter %d page %d\n", label, c.ChapterURL, c.CurrChapterNumber, c.CurrPageNumber)
		}

		return nil
	},
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
