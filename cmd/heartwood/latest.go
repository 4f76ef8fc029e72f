// Package main provides the entry point for the heartwood CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/heartwood/internal/config"
	"github.com/gorewood/heartwood/internal/gitx"
	"github.com/gorewood/heartwood/internal/output"
	vertag "github.com/gorewood/heartwood/internal/version"
	"github.com/gorewood/heartwood/internal/vitals"
)

// newLatestCmd creates the latest command.
func newLatestCmd() *cobra.Command {
	var (
		baseFlag     bool
		globFlags    []string
		fallbackFlag string
	)
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Print the largest version tag",
		Long: `Print the repository's largest version tag.

Tags are matched against a loose version grammar (optional "v" prefix,
major.minor, optional patch and pre-release suffix) and ordered
numerically. A release tag outranks every pre-release of the same base
version. Non-version tags are ignored.

Examples:
  heartwood latest                    # e.g. v1.4.0
  heartwood latest --base             # e.g. 1.4.0
  heartwood latest --glob 'api/v*'    # custom tag pattern
  heartwood latest --fallback 0.0.0   # value when no tags exist`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLatest(cmd, baseFlag, globFlags, fallbackFlag)
		},
	}
	cmd.Flags().BoolVar(&baseFlag, "base", false, "Print the major.minor.patch base instead of the tag")
	cmd.Flags().StringArrayVar(&globFlags, "glob", nil, "Tag glob pattern (repeatable; default v[0-9]* and [0-9]*)")
	cmd.Flags().StringVar(&fallbackFlag, "fallback", "", "Value to print when no version tags exist")
	return cmd
}

// runLatest executes the latest command.
func runLatest(cmd *cobra.Command, base bool, globs []string, fallback string) error {
	cfg, err := loadRepoConfig()
	if err != nil {
		printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd, config.Default())).
			WithStderr(cmd.ErrOrStderr())
		printer.Error(err)
		return err
	}
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd, cfg)).
		WithStderr(cmd.ErrOrStderr())

	if len(globs) == 0 {
		globs = cfg.TagGlobs
	}
	if len(globs) == 0 {
		globs = vitals.DefaultTagGlobs
	}
	if fallback == "" {
		fallback = cfg.Fallback
	}

	tags, err := gitx.ListTags(globs...)
	if err != nil {
		printer.Error(err)
		return err
	}

	res := vertag.Largest(tags)
	if res.Kind == vertag.KindNone {
		if fallback != "" {
			return printLatest(printer, fallback, fallback, "fallback")
		}
		notFound := output.NewNotFoundError("no version tags found")
		printer.Error(notFound)
		return notFound
	}

	value := res.Tag
	if base {
		value = res.Base
	}
	kind := "release"
	if res.Kind == vertag.KindPreRelease {
		kind = "pre-release"
	}
	return printLatest(printer, value, res.Base, kind)
}

// printLatest writes the resolved version in the selected output mode.
func printLatest(printer *output.Printer, value, base, kind string) error {
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"version": value,
			"base":    base,
			"kind":    kind,
		})
	}
	printer.Println(value)
	return nil
}
