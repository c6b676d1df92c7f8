package cli

import (
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "./config.yml"

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "tictactoe",
		Short:        "Hot-seat tic-tac-toe for two players on one device",
		SilenceUsage: true,
		// without a subcommand the HTTP server is started
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(configPath)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the yml config file")

	cmd.AddCommand(serveCmd(&configPath))
	cmd.AddCommand(playCmd(&configPath))

	return cmd
}
