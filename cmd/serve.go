package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/mager/bloom/server"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the HTTP server",
	Long:  `Runs the HTTP server. Configuration is read from BLOOM_ environment variables and an optional .env file.`,
	Run: func(cmd *cobra.Command, args []string) {
		fx.New(server.Module).Run()
	},
}
