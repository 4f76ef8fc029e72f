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

// newAgeCmd creates the age command.
func newAgeCmd() *cobra.Command {
	var eventFlag string
	cmd := &cobra.Command{
		Use:   "age",
		Short: "Show elapsed time since key repository events",
		Long: `Show elapsed time since the repository's key events: the first
commit, the latest commit, and the latest version tag.

Examples:
  heartwood age                 # All events
  heartwood age --event tag     # Time since the latest version tag
  heartwood age --event init    # Time since the first commit
  heartwood age --event commit  # Time since the latest commit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAge(cmd, eventFlag)
		},
	}
	cmd.Flags().StringVar(&eventFlag, "event", "", "Limit to one event: init, commit, or tag")
	return cmd
}

// ageEvent is one row of age output.
type ageEvent struct {
	Event   string `json:"event"`
	Ref     string `json:"ref"`
	At      string `json:"at"`
	Elapsed string `json:"elapsed"`
	Seconds int64  `json:"seconds"`
}

// runAge executes the age command.
func runAge(cmd *cobra.Command, event string) error {
	cfg, err := loadRepoConfig()
	if err != nil {
		printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd, config.Default())).
			WithStderr(cmd.ErrOrStderr())
		printer.Error(err)
		return err
	}
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd, cfg)).
		WithStderr(cmd.ErrOrStderr())

	switch event {
	case "", "init", "commit", "tag":
	default:
		badEvent := output.NewUserError("unknown event " + event + ": use init, commit, or tag")
		printer.Error(badEvent)
		return badEvent
	}

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

	events := collectAgeEvents(report, event)
	if len(events) == 0 {
		notFound := output.NewNotFoundError(missingEventMessage(event))
		printer.Error(notFound)
		return notFound
	}

	if printer.IsJSON() {
		return printer.WriteJSON(events)
	}
	for _, e := range events {
		printer.KeyValue(ageLabel(e.Event), e.Elapsed)
	}
	return nil
}

// collectAgeEvents turns the report into age rows, honoring the
// --event filter. Absent events are skipped.
func collectAgeEvents(report *vitals.Report, filter string) []ageEvent {
	var events []ageEvent
	add := func(name, ref string, at time.Time, elapsed time.Duration) {
		if filter != "" && filter != name {
			return
		}
		events = append(events, ageEvent{
			Event:   name,
			Ref:     ref,
			At:      at.Format(time.RFC3339),
			Elapsed: vitals.FormatDuration(elapsed),
			Seconds: int64(elapsed.Seconds()),
		})
	}

	if report.InitCommit != nil {
		add("init", report.InitCommit.SHA, report.InitCommit.Time, report.SinceInit)
	}
	if report.LastCommit != nil {
		add("commit", report.LastCommit.SHA, report.LastCommit.Time, report.SinceLastCommit)
	}
	if report.LatestTag != nil && !report.LatestTag.Time.IsZero() {
		add("tag", report.LatestTag.Name, report.LatestTag.Time, report.SinceLatestTag)
	}
	return events
}

// missingEventMessage names what was absent for the not-found error.
func missingEventMessage(event string) string {
	switch event {
	case "tag":
		return "no version tags found"
	case "init", "commit":
		return "repository has no commits"
	default:
		return "repository has no commits"
	}
}

// ageLabel maps an event name to its human-readable label.
func ageLabel(event string) string {
	switch event {
	case "init":
		return "Since first commit"
	case "commit":
		return "Since last commit"
	case "tag":
		return "Since latest tag"
	default:
		return event
	}
}
