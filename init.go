package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phobologic/namecheck/internal/config"
)

func newInitCmd(stdout, stderr io.Writer) *cobra.Command {
	var force, dryRun bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default " + config.FileName,
		Long: `Write a namecheck configuration file holding the default settings.

path defaults to ./` + config.FileName + `. An existing file is left untouched
unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path()
			if len(args) > 0 {
				path = args[0]
			}
			return runInit(path, force, dryRun, stdout, stderr)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the config instead of writing it")
	return cmd
}

func runInit(path string, force, dryRun bool, stdout, stderr io.Writer) error {
	cfg := config.Default()

	if dryRun {
		data, err := cfg.Document()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}

	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(stderr, "wrote config to %s\n", path)
	return nil
}
