package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/CrazyPigHead/t-reader/internal/config"
	"github.com/CrazyPigHead/t-reader/internal/history"

	"github.com/spf13/cobra"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently read positions of the configured book",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.History {
			return fmt.Errorf("reading history is disabled (set history: true in the config)")
		}
		if cfg.ChapterURL == "" {
			return fmt.Errorf("no chapter_url configured")
		}

		db, err := history.Open(config.HistoryPath())
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		ctx, stop := signalContext()
		defer stop()

		entries, err := db.Recent(ctx, cfg.ChapterURL, flagLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Nothing read yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, "WHEN\tCHAPTER\tPAGE\tNAME")
		for _, e := range entries {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", e.ReadAt.Local().Format(time.DateTime), e.Chapter, e.Page, e.ChapterName)
		}

		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "number of entries to show")

	rootCmd.AddCommand(historyCmd)
}
