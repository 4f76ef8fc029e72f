package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// setupRepo creates a scratch git repository, makes it the current
// directory, and isolates the test from any user-level heartwood
// configuration. Skips the test when git is not installed.
func setupRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	isolateConfig(t)

	dir := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	git(t, dir, "init", "-q", "--initial-branch=main")
	git(t, dir, "config", "user.email", "test@example.com")
	git(t, dir, "config", "user.name", "Test User")
	git(t, dir, "config", "commit.gpgsign", "false")

	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current dir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change to repo dir: %v", err)
	}
	return dir
}

// isolateConfig points config resolution at an empty directory and
// clears environment overrides.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HEARTWOOD_CONFIG_HOME", filepath.Join(t.TempDir(), "empty"))
	t.Setenv("HEARTWOOD_TAG_GLOBS", "")
	t.Setenv("HEARTWOOD_FALLBACK", "")
}

func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// commitAt creates a commit with a fixed date and returns its SHA.
func commitAt(t *testing.T, dir, name, date string) string {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(name+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	git(t, dir, "add", name)

	cmd := exec.CommandContext(context.Background(), "git", "commit", "-q", "-m", name)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_AUTHOR_DATE="+date, "GIT_COMMITTER_DATE="+date)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git commit failed: %v\n%s", err, out)
	}
	return git(t, dir, "rev-parse", "HEAD")
}

// runCommand executes the CLI with the given arguments and captures
// stdout and stderr.
func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}
