// Package main provides the entry point for the heartwood CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/gorewood/heartwood/internal/config"
	"github.com/gorewood/heartwood/internal/gitx"
	"github.com/gorewood/heartwood/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves the effective color setting from the --color flag,
// the configuration, and TTY detection. The flag wins when it is set to
// anything other than "auto".
func useColor(cmd *cobra.Command, cfg config.Config) bool {
	mode := "auto"
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	if mode == "auto" && cfg.Color != "" {
		mode = cfg.Color
	}
	return output.ResolveColorMode(mode, output.IsTTY(os.Stdout))
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the heartwood CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heartwood",
		Short: "Read a git repository's vitals",
		Long: `Heartwood reads a git repository's vitals: refs, working tree state,
version tags, and elapsed time since the events that matter.

It answers the questions release scripts keep re-implementing:
  - What is the largest version tag, and is it a release or a pre-release?
  - How old is this repository, and how stale is its latest release?
  - Does this branch/tag/remote/commit actually exist?

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'heartwood --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, or never")

	addCommands(cmd)

	return cmd
}

// addCommands adds all subcommands.
func addCommands(cmd *cobra.Command) {
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newLatestCmd())
	cmd.AddCommand(newAgeCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newServeCmd())
}

// loadRepoConfig resolves the configuration for the repository containing
// the current directory. Outside a repository the repo-level file is
// simply absent; global and environment settings still apply.
func loadRepoConfig() (config.Config, error) {
	root, err := gitx.RepoRoot()
	if err != nil {
		root = ""
	}
	return config.Load(root)
}
