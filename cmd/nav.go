package cmd

import (
	"context"

	"github.com/CrazyPigHead/t-reader/internal/reader"

	"github.com/spf13/cobra"
)

type navCommand struct {
	use, short string
	skipInit   bool
	op         func(*reader.Session, context.Context) error
}

var navCommands = []navCommand{
	{"boss", "Hide the book text", true, (*reader.Session).Boss},
	{"show", "Show the current page", false, (*reader.Session).PageContent},
	{"prev-chapter", "Go to the first page of the previous chapter", false, (*reader.Session).PrevChapter},
	{"next-chapter", "Go to the first page of the next chapter", false, (*reader.Session).NextChapter},
	{"prev", "Show the previous page", false, (*reader.Session).PrevPage},
	{"next", "Show the next page", false, (*reader.Session).NextPage},
}

func init() {
	for _, nc := range navCommands {
		rootCmd.AddCommand(&cobra.Command{
			Use:   nc.use,
			Short: nc.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(nc.skipInit, func(ctx context.Context, env *readerEnv) error {
					return nc.op(env.session, ctx)
				})
			},
		})
	}
}
