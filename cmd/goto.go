package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/CrazyPigHead/t-reader/internal/reader"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var gotoCmd = &cobra.Command{
	Use:   "goto [chapter]",
	Short: "Jump to a chapter by number, or pick one from the list",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(false, func(ctx context.Context, env *readerEnv) error {
			var n int
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid chapter number %q", args[0])
				}
				n = v
			} else {
				v, err := pickChapter(env.session)
				if err != nil {
					return err
				}
				n = v
			}

			return env.session.GotoChapter(ctx, n)
		})
	},
}

// pickChapter lets the user choose a chapter, starting at the current one.
func pickChapter(s *reader.Session) (int, error) {
	list := s.Chapters()
	if len(list) == 0 {
		return 0, reader.ErrNoChapters
	}

	items := make([]string, len(list))
	for i, c := range list {
		items[i] = fmt.Sprintf("%4d  %s", i+1, c.Name)
	}

	prompt := promptui.Select{
		Label: "Select chapter",
		Items: items,
		Size:  15,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(strings.TrimSpace(input)))
		},
	}

	cur := min(max(s.State().Cursor.Chapter-1, 0), len(items)-1)
	idx, _, err := prompt.RunCursorAt(cur, cur)
	if err != nil {
		return 0, fmt.Errorf("selection cancelled")
	}

	return idx + 1, nil
}

func init() {
	rootCmd.AddCommand(gotoCmd)
}
