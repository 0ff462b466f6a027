package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/CrazyPigHead/t-reader/internal/config"

	"github.com/spf13/cobra"
)

var flagAddFrom string

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a new config, empty or copied from a YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			reader := bufio.NewReader(os.Stdin)
			fmt.Print("Enter label for new config: ")
			label, _ = reader.ReadString('\n')
		}
		label = strings.TrimSpace(label)

		var (
			path string
			err  error
		)
		if flagAddFrom != "" {
			path, err = config.AddConfig(label, flagAddFrom)
		} else {
			path, err = config.CreateEmptyConfig(label)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Created new config: %s\n", path)
		fmt.Printf("Use `treader config switch %s` to make it active.\n", label)
		return nil
	},
}

func init() {
	configAddCmd.Flags().StringVar(&flagAddFrom, "from", "", "copy settings from this YAML file")

	configCmd.AddCommand(configAddCmd)
}
