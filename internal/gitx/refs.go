package gitx

import (
	"strings"

	"github.com/gorewood/heartwood/internal/output"
)

// CurrentBranch returns the name of the current branch.
// A detached HEAD is reported as a not-found error rather than the
// literal "HEAD" that rev-parse prints.
func CurrentBranch() (string, error) {
	branch, err := Run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get current branch", err)
	}
	if branch == "HEAD" {
		return "", output.NewNotFoundError("HEAD is detached")
	}
	return branch, nil
}

// Upstream returns the upstream tracking branch of the current branch
// (e.g., "origin/main"). Returns a not-found error when no upstream
// is configured.
func Upstream() (string, error) {
	up, err := Run("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if err != nil {
		return "", output.NewNotFoundError("no upstream configured for current branch")
	}
	return up, nil
}

// BranchExists checks whether a local branch with the given name exists.
func BranchExists(name string) bool {
	if name == "" {
		return false
	}
	_, err := Run("show-ref", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// TagExists checks whether a tag with the given name exists.
func TagExists(name string) bool {
	if name == "" {
		return false
	}
	_, err := Run("show-ref", "--verify", "--quiet", "refs/tags/"+name)
	return err == nil
}

// RemoteExists checks whether a remote with the given name is configured.
func RemoteExists(name string) bool {
	if name == "" {
		return false
	}
	_, err := Run("remote", "get-url", name)
	return err == nil
}

// CommitExists checks whether the given revision resolves to a commit
// object in the repository. Useful for validating SHAs from external
// sources before using them in ranges.
func CommitExists(rev string) bool {
	if rev == "" {
		return false
	}
	_, err := Run("cat-file", "-e", rev+"^{commit}")
	return err == nil
}

// ResolveCommit resolves a revision to its full commit SHA.
func ResolveCommit(rev string) (string, error) {
	sha, err := Run("rev-parse", "--verify", "--quiet", rev+"^{commit}")
	if err != nil {
		return "", output.NewNotFoundError("cannot resolve " + rev + " to a commit")
	}
	return sha, nil
}

// RefExists dispatches an existence probe by kind: "branch", "tag",
// "remote", or "commit". Unknown kinds are a user error.
func RefExists(kind, name string) (bool, error) {
	switch kind {
	case "branch":
		return BranchExists(name), nil
	case "tag":
		return TagExists(name), nil
	case "remote":
		return RemoteExists(name), nil
	case "commit":
		return CommitExists(name), nil
	default:
		return false, output.NewUserError("unknown ref kind " + kind + ": use branch, tag, remote, or commit")
	}
}

// ListTags enumerates tag names, optionally filtered by glob patterns.
// With no patterns, all tags are returned. Tags are returned in git's
// default (lexicographic) order; callers that need version order should
// sort themselves.
func ListTags(globs ...string) ([]string, error) {
	args := append([]string{"tag", "--list"}, globs...)
	out, err := Run(args...)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to list tags", err)
	}
	if out == "" {
		return nil, nil
	}

	lines := strings.Split(out, "\n")
	tags := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			tags = append(tags, line)
		}
	}
	return tags, nil
}
