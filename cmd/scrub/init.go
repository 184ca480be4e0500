package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/scrubtool/scrub/internal/config"
	"github.com/scrubtool/scrub/internal/vcs"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// createInitCommand creates the init command.
func createInitCommand() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the .scrub directory and its configuration history",
		Long: "Create the .scrub directory in the current project, write a " +
			"starter scrub.yml and optionally initialize the private git " +
			"history used for configuration snapshots.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			yes, err := cmd.Flags().GetBool("yes")
			if err != nil {
				return fmt.Errorf("failed to get yes flag: %w", err)
			}

			return runInit(yes)
		},
	}

	initCmd.Flags().BoolP("yes", "y", false, "Assume yes for all prompts")

	return initCmd
}

func runInit(assumeYes bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}

	scrubDir := filepath.Join(cwd, config.ScrubDir)
	if err := os.MkdirAll(scrubDir, 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", scrubDir, err)
	}

	if err := writeStarterSettings(scrubDir); err != nil {
		return err
	}

	initRepo := assumeYes
	if !assumeYes {
		initRepo, err = confirm("Track configuration history with git? [Y/n]")
		if err != nil {
			return err
		}
	}

	if initRepo {
		if err := vcs.NewTracker().Init(cwd); err != nil {
			return err
		}
	}

	fmt.Printf("Initialized %s\n", color.GreenString(scrubDir))
	return nil
}

// writeStarterSettings writes scrub.yml with defaults unless one exists.
func writeStarterSettings(scrubDir string) error {
	path := filepath.Join(scrubDir, config.SettingsFilename)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	data, err := yaml.Marshal(config.Settings{Feature: config.DefaultFeature})
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", config.SettingsFilename, err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// confirm asks a yes/no question, defaulting to yes.
func confirm(prompt string) (bool, error) {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()

	line.SetCtrlCAborts(true)

	answer, err := line.Prompt(color.CyanString(prompt + " "))
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return false, errors.New("cancelled by user")
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "" || answer == "y" || answer == "yes", nil
}
