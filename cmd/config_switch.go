package cmd

import (
	"fmt"

	"github.com/CrazyPigHead/t-reader/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different configuration profile (one profile per book)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string

		if len(args) == 1 {
			label = args[0]
		} else {
			v, err := pickProfile()
			if err != nil {
				return err
			}
			label = v
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		fmt.Println("Switched to:", label)
		if c, err := config.LoadProfile(label); err == nil && c.ChapterURL != "" {
			fmt.Printf("Reading %s at chapter %d, page %d\n", c.ChapterURL, c.CurrChapterNumber, c.CurrPageNumber)
		}
		return nil
	},
}

type profileItem struct {
	Label  string
	Book   string
	Where  string
	Active bool
}

func pickProfile() (string, error) {
	list, err := config.ListConfigs()
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", fmt.Errorf("no configs available")
	}

	items := make([]profileItem, len(list))
	cursor := 0
	for i, c := range list {
		items[i] = profileItem{Label: c.Label, Book: "no book", Active: c.Active}
		if p, err := config.LoadProfile(c.Label); err == nil && p.ChapterURL != "" {
			items[i].Book = p.ChapterURL
			items[i].Where = fmt.Sprintf("ch. %d p. %d", p.CurrChapterNumber, p.CurrPageNumber)
		}
		if c.Active {
			cursor = i
		}
	}

	prompt := promptui.Select{
		Label: "Select config",
		Items: items,
		Templates: &promptui.SelectTemplates{
			Active:   `▸ {{ .Label | cyan }}{{ if .Active }} (active){{ end }}`,
			Inactive: `  {{ .Label }}{{ if .Active }} (active){{ end }}`,
			Selected: `{{ "✔" | green }} {{ .Label }}`,
			Details:  `{{ .Book | faint }} {{ .Where | faint }}`,
		},
	}

	idx, _, err := prompt.RunCursorAt(cursor, 0)
	if err != nil {
		return "", fmt.Errorf("selection cancelled")
	}

	return list[idx].Label, nil
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
