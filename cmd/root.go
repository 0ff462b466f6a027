package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDebug     bool
	flagProfile   string
	flagProxy     string
	flagUserAgent string
)

var rootCmd = &cobra.Command{
	Use:   "treader",
	Short: "Read web novels one line at a time in the terminal",
	Long: `treader fetches a novel's table of contents and chapters from a web page
and shows the text in short slices on a single status line. The reading
position is kept in the active config profile.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "use this config profile instead of the active one")
	rootCmd.PersistentFlags().StringVar(&flagProxy, "proxy", "", "proxy address, overrides the config")
	rootCmd.PersistentFlags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
