package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"vhdlcheck/internal/project"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create a vhdlcheck.toml with default settings",
		Long: `Create a vhdlcheck.toml manifest in [path] (default: the current directory).
The directory is created if it does not exist. An existing manifest is never
overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	path, err := project.WriteManifest(target, project.DefaultConfig())
	if err != nil {
		return err
	}

	rel := path
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, path); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized vhdlcheck project: %s\n", rel)
	return nil
}
