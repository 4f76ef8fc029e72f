// Package main provides the entry point for the heartwood CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/heartwood/internal/config"
	"github.com/gorewood/heartwood/internal/gitx"
	"github.com/gorewood/heartwood/internal/output"
)

// newCheckCmd creates the check command.
func newCheckCmd() *cobra.Command {
	var quietFlag bool
	cmd := &cobra.Command{
		Use:   "check (branch|tag|remote|commit) <name>",
		Short: "Check whether a ref exists",
		Long: `Check whether a branch, tag, remote, or commit exists in the
repository. Exits 0 when it does and 3 when it does not, so scripts can
branch on the result.

Examples:
  heartwood check branch main
  heartwood check tag v1.2.3
  heartwood check remote origin
  heartwood check commit 4b825dc
  heartwood check branch main --quiet && echo present`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], args[1], quietFlag)
		},
	}
	cmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress output; report via exit code only")
	return cmd
}

// runCheck executes the check command.
func runCheck(cmd *cobra.Command, kind, name string, quiet bool) error {
	cfg, err := loadRepoConfig()
	if err != nil {
		printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd, config.Default())).
			WithStderr(cmd.ErrOrStderr())
		printer.Error(err)
		return err
	}
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd, cfg)).
		WithStderr(cmd.ErrOrStderr())

	exists, err := gitx.RefExists(kind, name)
	if err != nil {
		printer.Error(err)
		return err
	}

	if exists {
		if quiet {
			return nil
		}
		return printer.Success(map[string]any{
			"kind":    kind,
			"name":    name,
			"exists":  true,
			"message": kind + " " + name + " exists",
		})
	}

	notFound := output.NewNotFoundError(kind + " " + name + " not found")
	if !quiet {
		printer.Error(notFound)
	}
	return notFound
}
