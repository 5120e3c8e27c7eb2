package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newRootCommand builds the command tree. Without a subcommand the server is started.
func newRootCommand() *cobra.Command {
	serve := newServeCommand()
	root := &cobra.Command{
		Use:   "server",
		Short: "Event catalog server - venues and the events held at them",
		Long: `Event catalog server exposes the venue and event catalog over HTTP.

Configuration comes from the environment (and a .env file outside production):
STORAGE_BACKEND selects the in-memory or PostgreSQL storage.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve.RunE(cmd, args)
		},
	}
	root.AddCommand(serve)
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newHashPasswordCommand())
	root.AddCommand(newTokenCommand())
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
