package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/scrubtool/scrub/internal/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// createRootCommand creates the main root command that shows help by default.
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scrub",
		Short: "Run and replay project clean commands",
		// Errors are surfaced exactly once, by main.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Show help when run without subcommands
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(
		createCleanCommand(),
		createInitCommand(),
		createHistoryCommand(),
	)

	return rootCmd
}

// loggingContext attaches the rotating file logger to ctx. Logging is an
// ambient concern: when the log file cannot be set up the command still
// runs, with a disabled logger.
func loggingContext(ctx context.Context, root string) context.Context {
	logCtx, err := logging.New(ctx, afero.NewOsFs(), logging.Config{
		Root:  root,
		Level: zerolog.InfoLevel,
	})
	if err != nil {
		return zerolog.Nop().WithContext(ctx)
	}
	return logCtx
}
