package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/scrubtool/scrub/internal/config"
	"github.com/scrubtool/scrub/internal/history"
	"github.com/scrubtool/scrub/internal/project"
	"github.com/scrubtool/scrub/internal/storage"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// createHistoryCommand creates the history command.
func createHistoryCommand() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded clean runs for this project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return fmt.Errorf("failed to get limit flag: %w", err)
			}
			all, err := cmd.Flags().GetBool("all")
			if err != nil {
				return fmt.Errorf("failed to get all flag: %w", err)
			}

			return runHistory(cmd.Context(), limit, all)
		},
	}

	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
	historyCmd.Flags().Bool("all", false, "Show runs from all projects")

	return historyCmd
}

func runHistory(ctx context.Context, limit int, all bool) error {
	root := ""
	if !all {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current working directory: %w", err)
		}

		env := config.EnvFromProcess()
		resolver := project.NewResolver(project.Options{RootOverride: env.RootOverride})
		root, err = resolver.Resolve(cwd)
		if err != nil {
			return err
		}
	}

	dbPath, err := storage.New(afero.NewOsFs()).GetHistoryPath()
	if err != nil {
		return err
	}

	db, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runs, err := db.Recent(ctx, root, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		status := color.GreenString("ok")
		if run.ExitCode != 0 {
			status = color.RedString(fmt.Sprintf("exit %d", run.ExitCode))
		}
		fmt.Printf("%s  %-8s %s  (%s, dir %s, feature %s)\n",
			run.StartedAt.Format("2006-01-02 15:04:05"), status, run.Command,
			run.Duration.Round(time.Millisecond), run.Dir, run.Feature)
	}

	return nil
}
