package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/heartwood/internal/gitx"
	"github.com/gorewood/heartwood/internal/version"
	"github.com/gorewood/heartwood/internal/vitals"
)

// --- Shared types ---

// TagSummary describes a resolved version tag.
type TagSummary struct {
	Name       string `json:"name"                 jsonschema:"the tag as it appears in the repository"`
	Base       string `json:"base"                 jsonschema:"major.minor.patch reduction of the tag"`
	PreRelease bool   `json:"pre_release"          jsonschema:"whether the tag carries a pre-release suffix"`
	TaggedAt   string `json:"tagged_at,omitempty"  jsonschema:"commit timestamp of the tagged commit (RFC3339)"`
}

// EventAge describes one repository event and the time elapsed since it.
type EventAge struct {
	Ref     string `json:"ref"     jsonschema:"commit SHA or tag name for the event"`
	At      string `json:"at"      jsonschema:"event timestamp (RFC3339)"`
	Elapsed string `json:"elapsed" jsonschema:"humanized elapsed time, e.g. 2d 5h"`
	Seconds int64  `json:"seconds" jsonschema:"elapsed time in whole seconds"`
}

// --- status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Root      string      `json:"root"                 jsonschema:"repository root directory"`
	Name      string      `json:"name"                 jsonschema:"repository name (root basename)"`
	Branch    string      `json:"branch,omitempty"     jsonschema:"current branch, empty when detached or unborn"`
	Detached  bool        `json:"detached,omitempty"   jsonschema:"whether HEAD is detached"`
	Head      string      `json:"head,omitempty"       jsonschema:"full HEAD SHA"`
	Upstream  string      `json:"upstream,omitempty"   jsonschema:"upstream tracking branch, empty when none"`
	Pristine  bool        `json:"pristine"             jsonschema:"whether the working tree has no changes"`
	LatestTag *TagSummary `json:"latest_tag,omitempty" jsonschema:"largest version tag, if any"`
}

func handleStatus(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
	report, err := vitals.Collect(time.Now(), nil)
	if err != nil {
		return nil, StatusOutput{}, fmt.Errorf("collecting repository vitals: %w", err)
	}

	out := StatusOutput{
		Root:     report.Root,
		Name:     report.Name,
		Branch:   report.Branch,
		Detached: report.Detached,
		Head:     report.Head,
		Upstream: report.Upstream,
		Pristine: report.Pristine,
	}
	if report.LatestTag != nil {
		out.LatestTag = toTagSummary(report.LatestTag)
	}
	return nil, out, nil
}

// --- latest_version tool ---

// LatestVersionInput is the input for the latest_version tool.
type LatestVersionInput struct {
	Globs []string `json:"globs,omitempty" jsonschema:"tag glob patterns, defaults to v[0-9]* and [0-9]*"`
}

// LatestVersionOutput is the output for the latest_version tool.
type LatestVersionOutput struct {
	Found bool   `json:"found"          jsonschema:"whether any tag matched the version grammar"`
	Tag   string `json:"tag,omitempty"  jsonschema:"the largest version tag"`
	Base  string `json:"base,omitempty" jsonschema:"major.minor.patch reduction of the tag"`
	Kind  string `json:"kind"           jsonschema:"release, pre-release, or none"`
}

func handleLatestVersion(_ context.Context, _ *mcp.CallToolRequest, in LatestVersionInput) (*mcp.CallToolResult, LatestVersionOutput, error) {
	globs := in.Globs
	if len(globs) == 0 {
		globs = vitals.DefaultTagGlobs
	}
	tags, err := gitx.ListTags(globs...)
	if err != nil {
		return nil, LatestVersionOutput{}, fmt.Errorf("listing tags: %w", err)
	}

	res := version.Largest(tags)
	out := LatestVersionOutput{
		Found: res.Kind != version.KindNone,
		Tag:   res.Tag,
		Base:  res.Base,
		Kind:  kindString(res.Kind),
	}
	return nil, out, nil
}

// --- age tool ---

// AgeInput is the input for the age tool (no parameters needed).
type AgeInput struct{}

// AgeOutput is the output for the age tool. Absent events (empty
// history, no version tags) are omitted.
type AgeOutput struct {
	InitCommit *EventAge `json:"init_commit,omitempty" jsonschema:"first commit of the repository"`
	LastCommit *EventAge `json:"last_commit,omitempty" jsonschema:"most recent commit"`
	LatestTag  *EventAge `json:"latest_tag,omitempty"  jsonschema:"largest version tag"`
}

func handleAge(_ context.Context, _ *mcp.CallToolRequest, _ AgeInput) (*mcp.CallToolResult, AgeOutput, error) {
	report, err := vitals.Collect(time.Now(), nil)
	if err != nil {
		return nil, AgeOutput{}, fmt.Errorf("collecting repository vitals: %w", err)
	}

	var out AgeOutput
	if report.InitCommit != nil {
		out.InitCommit = toEventAge(report.InitCommit.SHA, report.InitCommit.Time, report.SinceInit)
	}
	if report.LastCommit != nil {
		out.LastCommit = toEventAge(report.LastCommit.SHA, report.LastCommit.Time, report.SinceLastCommit)
	}
	if report.LatestTag != nil && !report.LatestTag.Time.IsZero() {
		out.LatestTag = toEventAge(report.LatestTag.Name, report.LatestTag.Time, report.SinceLatestTag)
	}
	return nil, out, nil
}

// --- check_ref tool ---

// CheckRefInput is the input for the check_ref tool.
type CheckRefInput struct {
	Kind string `json:"kind" jsonschema:"what to check: branch, tag, remote, or commit"`
	Name string `json:"name" jsonschema:"the ref name or revision to probe"`
}

// CheckRefOutput is the output for the check_ref tool.
type CheckRefOutput struct {
	Exists bool `json:"exists" jsonschema:"whether the ref exists in the repository"`
}

func handleCheckRef(_ context.Context, _ *mcp.CallToolRequest, in CheckRefInput) (*mcp.CallToolResult, CheckRefOutput, error) {
	exists, err := gitx.RefExists(in.Kind, in.Name)
	if err != nil {
		return nil, CheckRefOutput{}, err
	}
	return nil, CheckRefOutput{Exists: exists}, nil
}

// --- helpers ---

func toTagSummary(tag *vitals.TagInfo) *TagSummary {
	summary := &TagSummary{
		Name:       tag.Name,
		Base:       tag.Base,
		PreRelease: tag.PreRelease,
	}
	if !tag.Time.IsZero() {
		summary.TaggedAt = tag.Time.Format(time.RFC3339)
	}
	return summary
}

func toEventAge(ref string, at time.Time, elapsed time.Duration) *EventAge {
	return &EventAge{
		Ref:     ref,
		At:      at.Format(time.RFC3339),
		Elapsed: vitals.FormatDuration(elapsed),
		Seconds: int64(elapsed.Seconds()),
	}
}

func kindString(k version.Kind) string {
	switch k {
	case version.KindRelease:
		return "release"
	case version.KindPreRelease:
		return "pre-release"
	default:
		return "none"
	}
}
