package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yml"

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Two-player tic-tac-toe in the browser or the terminal",
		Long: heredoc.Doc(`
			tictactoe runs a two-player tic-tac-toe game. Both players share
			one board and take turns, X first.

			Use "serve" to host the browser page and "play" for a game in
			this terminal.
		`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringP("config", "c", defaultConfigPath, "Path to the config file")

	root.AddCommand(Serve())
	root.AddCommand(Play())

	return root
}
