// Package main provides the entry point for the heartwood CLI.
package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/heartwood/internal/config"
	"github.com/gorewood/heartwood/internal/gitx"
	"github.com/gorewood/heartwood/internal/output"
	"github.com/gorewood/heartwood/internal/vitals"
)

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show repository vitals",
		Long: `Show the repository's vitals: root, branch, HEAD, upstream,
working tree state, the latest version tag, and elapsed time since the
repository's key events.

Examples:
  heartwood status          # Human-readable report
  heartwood status --json   # Structured output for scripting`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRepoConfig()
	if err != nil {
		printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd, config.Default())).
			WithStderr(cmd.ErrOrStderr())
		printer.Error(err)
		return err
	}
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd, cfg)).
		WithStderr(cmd.ErrOrStderr())

	if !gitx.IsRepo() {
		repoErr := output.NewSystemError("not in a git repository")
		printer.Error(repoErr)
		return repoErr
	}

	report, err := vitals.Collect(time.Now(), cfg.TagGlobs)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(statusJSON(report))
	}

	printHumanStatus(printer, report)
	return nil
}

// statusJSON shapes the report for JSON output, adding humanized
// elapsed-time strings alongside the raw values.
func statusJSON(report *vitals.Report) map[string]any {
	data := map[string]any{
		"root":     report.Root,
		"name":     report.Name,
		"pristine": report.Pristine,
	}
	if report.Branch != "" {
		data["branch"] = report.Branch
	}
	if report.Detached {
		data["detached"] = true
	}
	if report.Head != "" {
		data["head"] = report.Head
	}
	if report.Upstream != "" {
		data["upstream"] = report.Upstream
	}
	if report.InitCommit != nil {
		data["init_commit"] = report.InitCommit
		data["since_init"] = vitals.FormatDuration(report.SinceInit)
	}
	if report.LastCommit != nil {
		data["last_commit"] = report.LastCommit
		data["since_last_commit"] = vitals.FormatDuration(report.SinceLastCommit)
	}
	if report.LatestTag != nil {
		data["latest_tag"] = report.LatestTag
		if !report.LatestTag.Time.IsZero() {
			data["since_latest_tag"] = vitals.FormatDuration(report.SinceLatestTag)
		}
	}
	return data
}

// printHumanStatus outputs the report in human-readable format.
func printHumanStatus(printer *output.Printer, report *vitals.Report) {
	printer.Section("Repository")
	printer.KeyValue("Repo", report.Name)
	printer.KeyValue("Root", report.Root)
	switch {
	case report.Detached:
		printer.KeyValue("Branch", "(detached HEAD)")
	case report.Branch == "":
		printer.KeyValue("Branch", "(unborn)")
	default:
		printer.KeyValue("Branch", report.Branch)
	}
	if report.Head != "" {
		printer.KeyValue("HEAD", report.Head[:min(12, len(report.Head))])
	}
	if report.Upstream != "" {
		printer.KeyValue("Upstream", report.Upstream)
	} else {
		printer.KeyValue("Upstream", "(none)")
	}
	printer.KeyValue("Working tree", formatPristine(report.Pristine))

	printer.Section("Version")
	if report.LatestTag == nil {
		printer.Muted("no version tags")
	} else {
		printer.KeyValue("Latest tag", report.LatestTag.Name)
		printer.KeyValue("Base", report.LatestTag.Base)
		if report.LatestTag.PreRelease {
			printer.KeyValue("Kind", "pre-release")
		} else {
			printer.KeyValue("Kind", "release")
		}
	}

	printer.Section("Age")
	if report.InitCommit == nil {
		printer.Muted("no commits")
		return
	}
	printer.KeyValue("Since first commit", vitals.FormatDuration(report.SinceInit))
	if report.LastCommit != nil {
		printer.KeyValue("Since last commit", vitals.FormatDuration(report.SinceLastCommit))
	}
	if report.LatestTag != nil && !report.LatestTag.Time.IsZero() {
		printer.KeyValue("Since latest tag", vitals.FormatDuration(report.SinceLatestTag))
	}
}

// formatPristine returns a human-readable working tree state.
func formatPristine(pristine bool) string {
	if pristine {
		return "clean"
	}
	return "dirty"
}
