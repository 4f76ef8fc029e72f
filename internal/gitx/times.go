package gitx

import (
	"strconv"
	"strings"
	"time"

	"github.com/gorewood/heartwood/internal/output"
)

// InitCommit returns the full SHA of the repository's root commit.
// When history has multiple roots (e.g., merged unrelated histories),
// the oldest listed root is returned.
func InitCommit() (string, error) {
	out, err := Run("rev-list", "--max-parents=0", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to find root commit", err)
	}
	if out == "" {
		return "", output.NewNotFoundError("repository has no commits")
	}
	// rev-list prints newest first; the last line is the oldest root.
	lines := strings.Split(out, "\n")
	return strings.TrimSpace(lines[len(lines)-1]), nil
}

// CommitTime returns the committer timestamp of the given revision.
// Annotated tags are peeled to the commit they point at.
func CommitTime(rev string) (time.Time, error) {
	out, err := Run("log", "-1", "--format=%ct", rev)
	if err != nil {
		return time.Time{}, output.NewSystemErrorWithCause("failed to get commit time for "+rev, err)
	}
	unix, err := strconv.ParseInt(out, 10, 64)
	if err != nil {
		return time.Time{}, output.NewSystemError("unexpected commit time output: " + out)
	}
	return time.Unix(unix, 0), nil
}

// TagTime returns the committer timestamp of the commit a tag points at.
func TagTime(tag string) (time.Time, error) {
	return CommitTime("refs/tags/" + tag)
}
