package gitx

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// testRepo is a helper for creating and inspecting scratch git
// repositories. Tests that use it chdir into the repo; the previous
// working directory is restored via t.Cleanup.
type testRepo struct {
	t   *testing.T
	dir string
	n   int
}

// newTestRepo creates a git repository in a temp directory and makes it
// the current directory for the remainder of the test. Skips the test
// when git is not installed.
func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	// macOS: TempDir may be a symlink; resolve so paths compare equal
	// with rev-parse --show-toplevel output.
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	repo := &testRepo{t: t, dir: dir}
	repo.git("init", "-q", "--initial-branch=main")
	repo.git("config", "user.email", "test@example.com")
	repo.git("config", "user.name", "Test User")
	repo.git("config", "commit.gpgsign", "false")
	repo.git("config", "tag.gpgsign", "false")

	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current dir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change to repo dir: %v", err)
	}
	return repo
}

// git runs a git command in the repository and fails the test on error.
func (r *testRepo) git(args ...string) string {
	r.t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = r.dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// commit creates a commit with a fresh file and returns its SHA.
func (r *testRepo) commit(msg string) string {
	r.t.Helper()
	return r.commitAt(msg, "")
}

// commitAt creates a commit with a fixed author/committer date
// (RFC3339 or git-approxidate) and returns its SHA.
func (r *testRepo) commitAt(msg, date string) string {
	r.t.Helper()
	r.n++
	name := "file" + strconv.Itoa(r.n) + ".txt"
	if err := os.WriteFile(filepath.Join(r.dir, name), []byte(msg+"\n"), 0o644); err != nil {
		r.t.Fatalf("failed to write %s: %v", name, err)
	}
	r.git("add", name)

	cmd := exec.CommandContext(context.Background(), "git", "commit", "-q", "-m", msg)
	cmd.Dir = r.dir
	cmd.Env = os.Environ()
	if date != "" {
		cmd.Env = append(cmd.Env, "GIT_AUTHOR_DATE="+date, "GIT_COMMITTER_DATE="+date)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		r.t.Fatalf("git commit failed: %v\n%s", err, out)
	}
	return r.git("rev-parse", "HEAD")
}

// tag creates a lightweight tag at HEAD.
func (r *testRepo) tag(name string) {
	r.t.Helper()
	r.git("tag", name)
}
