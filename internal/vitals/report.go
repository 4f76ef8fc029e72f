// Package vitals collects repository facts for the heartwood CLI:
// refs, working tree state, the latest version tag, and elapsed time
// since the repository's key events.
package vitals

import (
	"path/filepath"
	"time"

	"github.com/gorewood/heartwood/internal/gitx"
	"github.com/gorewood/heartwood/internal/output"
	"github.com/gorewood/heartwood/internal/version"
)

// DefaultTagGlobs is the tag enumeration pattern set: tags starting
// with "v" followed by a digit, or with a digit.
var DefaultTagGlobs = []string{"v[0-9]*", "[0-9]*"}

// CommitInfo identifies a commit and when it was made.
type CommitInfo struct {
	SHA  string    `json:"sha"`
	Time time.Time `json:"time"`
}

// TagInfo describes the repository's largest version tag.
type TagInfo struct {
	Name       string    `json:"name"`
	Base       string    `json:"base"`
	PreRelease bool      `json:"pre_release"`
	Time       time.Time `json:"time"`
}

// Report is a snapshot of repository vitals. Absent facts (no upstream,
// detached HEAD, no tags, empty history) are represented by empty or nil
// fields rather than errors.
type Report struct {
	Root     string `json:"root"`
	Name     string `json:"name"`
	Branch   string `json:"branch,omitempty"`
	Detached bool   `json:"detached,omitempty"`
	Head     string `json:"head,omitempty"`
	Upstream string `json:"upstream,omitempty"`
	Pristine bool   `json:"pristine"`

	InitCommit *CommitInfo `json:"init_commit,omitempty"`
	LastCommit *CommitInfo `json:"last_commit,omitempty"`
	LatestTag  *TagInfo    `json:"latest_tag,omitempty"`

	// Elapsed time from each event to the clock passed to Collect.
	// Zero when the corresponding event is absent. Excluded from JSON:
	// a Duration marshals as nanoseconds, so renderers emit their own
	// humanized or seconds-based fields instead.
	SinceInit       time.Duration `json:"-"`
	SinceLastCommit time.Duration `json:"-"`
	SinceLatestTag  time.Duration `json:"-"`
}

// Collect builds a Report for the repository containing the current
// directory. now supplies the clock for the elapsed-time fields; globs
// override DefaultTagGlobs when non-empty.
//
// Only the absence of a repository is an error. Everything else
// degrades to absent fields: an unborn branch has no commits, a fresh
// repository has no tags, and neither should fail the report.
func Collect(now time.Time, globs []string) (*Report, error) {
	root, err := gitx.RepoRoot()
	if err != nil {
		return nil, err
	}

	r := &Report{
		Root:     root,
		Name:     filepath.Base(root),
		Pristine: gitx.IsPristine(),
	}

	branch, err := gitx.CurrentBranch()
	switch {
	case err == nil:
		r.Branch = branch
	case output.IsNotFound(err):
		r.Detached = true
	}

	if up, err := gitx.Upstream(); err == nil {
		r.Upstream = up
	}

	head, err := gitx.HEAD()
	if err != nil {
		// Unborn branch: no commits, no tags worth resolving.
		return r, nil
	}
	r.Head = head

	if t, err := gitx.CommitTime("HEAD"); err == nil {
		r.LastCommit = &CommitInfo{SHA: head, Time: t}
		r.SinceLastCommit = now.Sub(t)
	}

	if sha, err := gitx.InitCommit(); err == nil {
		if t, err := gitx.CommitTime(sha); err == nil {
			r.InitCommit = &CommitInfo{SHA: sha, Time: t}
			r.SinceInit = now.Sub(t)
		}
	}

	if len(globs) == 0 {
		globs = DefaultTagGlobs
	}
	tags, err := gitx.ListTags(globs...)
	if err != nil {
		return nil, err
	}
	if res := version.Largest(tags); res.Kind != version.KindNone {
		info := &TagInfo{
			Name:       res.Tag,
			Base:       res.Base,
			PreRelease: res.Kind == version.KindPreRelease,
		}
		if t, err := gitx.TagTime(res.Tag); err == nil {
			info.Time = t
			r.SinceLatestTag = now.Sub(t)
		}
		r.LatestTag = info
	}

	return r, nil
}
