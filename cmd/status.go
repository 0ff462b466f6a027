package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/CrazyPigHead/t-reader/internal/ui"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how far into the book you are",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(false, func(ctx context.Context, env *readerEnv) error {
			st := env.session.State()
			if st.Chapters == 0 {
				return fmt.Errorf("no chapters found at %s", st.BookURL)
			}

			title := fmt.Sprintf("chapter %d", st.Cursor.Chapter)
			if st.Cursor.Chapter >= 1 && st.Cursor.Chapter <= st.Chapters {
				title = env.session.Chapters()[st.Cursor.Chapter-1].Name
			}

			fmt.Printf("Book:  %s\n", st.BookURL)
			if st.Loaded != 0 {
				fmt.Printf("Page:  %d of %d (%d characters each)\n", st.Cursor.Page, st.PageCount, st.PageSize)
			}
			ui.ShowReadingProgress(os.Stdout, title, st.Cursor.Chapter, st.Chapters)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
