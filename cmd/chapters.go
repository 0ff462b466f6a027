package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/CrazyPigHead/t-reader/internal/providers"
	"github.com/CrazyPigHead/t-reader/internal/reader"

	"github.com/spf13/cobra"
)

var (
	flagRange string
	flagList  string
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "List the chapters of the configured book",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(true, func(ctx context.Context, env *readerEnv) error {
			toc, err := tableOfContents(ctx, env.session, env.log)
			if err != nil {
				return err
			}

			all := providers.Number(toc)
			selected := providers.Filter(all, flagRange, flagList)
			if len(selected) == 0 {
				return fmt.Errorf("no chapters selected")
			}

			current := env.session.State().Cursor.Chapter

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(w, "#\tNAME\tURL\t")
			for _, c := range selected {
				mark := ""
				if c.Number == current {
					mark = "<"
				}
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.Number, c.Name, c.URL, mark)
			}

			if err := w.Flush(); err != nil {
				env.log.Errorf("failed to flush table output: %v\n", err)
			}
			return nil
		})
	},
}

// tableOfContents initializes s and returns its chapter list. Failing to
// load the current chapter's text only matters when the list itself is
// missing.
func tableOfContents(ctx context.Context, s *reader.Session, log reader.Logger) ([]providers.ChapterInfo, error) {
	err := s.Init(ctx)
	toc := s.Chapters()
	if err != nil {
		if len(toc) == 0 {
			return nil, err
		}
		log.Errorf("current chapter not loaded: %v\n", err)
	}

	return toc, nil
}

func init() {
	chaptersCmd.Flags().StringVar(&flagRange, "range", "", "show a range of chapters (e.g. 5-12)")
	chaptersCmd.Flags().StringVar(&flagList, "list", "", "show specific chapters (e.g. 1,3,5)")

	rootCmd.AddCommand(chaptersCmd)
}
