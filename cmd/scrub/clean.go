package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/scrubtool/scrub/internal/config"
	"github.com/scrubtool/scrub/internal/executor"
	"github.com/scrubtool/scrub/internal/history"
	"github.com/scrubtool/scrub/internal/logging"
	"github.com/scrubtool/scrub/internal/project"
	"github.com/scrubtool/scrub/internal/storage"
	"github.com/scrubtool/scrub/internal/vcs"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// createCleanCommand creates the clean command.
func createCleanCommand() *cobra.Command {
	cleanCmd := &cobra.Command{
		Use:   "clean [--feature NAME] -- COMMAND [ARGS...]",
		Short: "Run a clean command and record it for replay",
		Long: "Run a clean command in the project's clean directory and record " +
			"which directory and command were used. Without a command, the " +
			"previously recorded one is replayed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			feature, err := cmd.Flags().GetString("feature")
			if err != nil {
				return fmt.Errorf("failed to get feature flag: %w", err)
			}

			return runClean(cmd.Context(), feature, args)
		},
	}

	cleanCmd.Flags().StringP("feature", "f", "", "Feature namespace for the stored configuration")

	return cleanCmd
}

// runClean is the full clean flow: preflight, root resolution, command
// execution, config save and best-effort auto-commit.
func runClean(ctx context.Context, feature string, args []string) error {
	env := config.EnvFromProcess()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}

	resolver := project.NewResolver(project.Options{RootOverride: env.RootOverride})
	root, err := resolver.Resolve(cwd)
	if err != nil {
		return err
	}

	ctx = loggingContext(ctx, root)

	settings, err := config.LoadSettings(root)
	if err != nil {
		return err
	}
	if feature == "" {
		feature = settings.Feature
	}

	store := config.NewStore(config.NewToolBackend(env.ToolPath, root))
	if err := store.Check(); err != nil {
		return err
	}

	cfg, err := planRun(ctx, store, root, cwd, feature, args)
	if err != nil {
		return err
	}

	runDir := filepath.Join(root, cfg.Dir)
	if err := ensureDir(runDir); err != nil {
		return err
	}

	command := args
	if len(command) == 0 {
		command = strings.Fields(cfg.Command)
	}
	runner := executor.NewRunner(os.Stdout, os.Stderr)

	started := time.Now()
	exitCode, runErr := runner.Run(ctx, runDir, command)
	recordRun(ctx, history.Run{
		StartedAt: started,
		Root:      root,
		Dir:       cfg.Dir,
		Command:   cfg.Command,
		Feature:   cfg.Feature,
		Duration:  time.Since(started),
		ExitCode:  exitCode,
	})
	if runErr != nil {
		if exitCode > 0 {
			return &ExitError{Message: runErr.Error(), Code: exitCode}
		}
		return runErr
	}

	if err := store.Save(cfg); err != nil {
		return err
	}

	if autoCommitEnabled(env, settings) {
		if err := vcs.NewTracker().AutoCommit(ctx, root); err != nil {
			warnf(ctx, "Auto-commit failed: %v", err)
		}
	}

	fmt.Println("Clean command executed successfully.")
	return nil
}

// planRun decides what to run and where. With explicit command tokens the
// clean directory is the current directory relative to root; without them
// the previously saved configuration is replayed.
func planRun(ctx context.Context, store *config.Store, root, cwd, feature string,
	args []string,
) (config.CleanConfig, error) {
	if feature == "" {
		feature = config.DefaultFeature
	}

	if len(args) > 0 {
		relDir := project.RelativeTo(root, cwd, func(format string, fnArgs ...any) {
			warnf(ctx, format, fnArgs...)
		})
		return config.CleanConfig{
			Dir:     relDir,
			Command: strings.Join(args, " "),
			Feature: feature,
		}, nil
	}

	cfg, found, err := store.Load(feature)
	if err != nil {
		return config.CleanConfig{}, err
	}
	if !found || cfg.Command == "" {
		return config.CleanConfig{}, fmt.Errorf(
			"no clean command recorded for feature %q. Run scrub clean -- COMMAND first", feature)
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}

	return cfg, nil
}

// ensureDir validates that the resolved clean directory exists.
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("clean directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("clean path is not a directory: %s", dir)
	}
	return nil
}

// autoCommitEnabled combines the environment kill switch with the project
// settings file. The environment wins.
func autoCommitEnabled(env config.Env, settings config.Settings) bool {
	if env.AutoCommitDisabled {
		return false
	}
	return settings.AutoCommitEnabled()
}

// recordRun appends the run to the history database. History is a
// convenience: failures are logged and otherwise ignored.
func recordRun(ctx context.Context, run history.Run) {
	dbPath, err := storage.New(afero.NewOsFs()).GetHistoryPath()
	if err != nil {
		logging.Get(ctx).Debug().Err(err).Msg("skipping history record")
		return
	}

	db, err := history.Open(dbPath)
	if err != nil {
		logging.Get(ctx).Debug().Err(err).Msg("skipping history record")
		return
	}
	defer func() { _ = db.Close() }()

	if err := db.Record(ctx, run); err != nil {
		logging.Get(ctx).Debug().Err(err).Msg("failed to record run")
	}
}

// warnf reports a non-fatal problem on stderr and in the log.
func warnf(ctx context.Context, format string, args ...any) {
	logging.Get(ctx).Warn().Msgf(format, args...)
	_, _ = fmt.Fprintf(os.Stderr, "%s %s\n",
		color.YellowString("Warning:"), fmt.Sprintf(format, args...))
}
