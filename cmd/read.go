package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/CrazyPigHead/t-reader/internal/reader"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

type readAction struct {
	label string
	run   func(context.Context, *readerEnv) error
}

var readActions = []readAction{
	{"next page", func(ctx context.Context, e *readerEnv) error { return e.session.NextPage(ctx) }},
	{"previous page", func(ctx context.Context, e *readerEnv) error { return e.session.PrevPage(ctx) }},
	{"next chapter", func(ctx context.Context, e *readerEnv) error { return e.session.NextChapter(ctx) }},
	{"previous chapter", func(ctx context.Context, e *readerEnv) error { return e.session.PrevChapter(ctx) }},
	{"go to chapter", func(ctx context.Context, e *readerEnv) error {
		n, err := pickChapter(e.session)
		if err != nil {
			return err
		}
		return e.session.GotoChapter(ctx, n)
	}},
	{"boss", func(ctx context.Context, e *readerEnv) error { return e.session.Boss(ctx) }},
	{"quit", nil},
}

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read interactively, choosing each step from a menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(false, func(ctx context.Context, env *readerEnv) error {
			if err := env.session.PageContent(ctx); err != nil && !reader.IsBoundary(err) {
				return err
			}

			items := make([]string, len(readActions))
			for i, a := range readActions {
				items[i] = a.label
			}

			for ctx.Err() == nil {
				fmt.Println()
				prompt := promptui.Select{
					Label:    "»",
					Items:    items,
					HideHelp: true,
				}

				idx, _, err := prompt.Run()
				if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
					return nil
				}
				if err != nil {
					return err
				}

				act := readActions[idx]
				if act.run == nil {
					return nil
				}

				err = act.run(ctx, env)
				if err != nil && !reader.IsBoundary(err) && !errors.Is(err, reader.ErrBusy) {
					env.log.Errorf("%s: %v\n", act.label, err)
				}
			}

			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
