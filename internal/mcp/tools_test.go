package mcp

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupRepo creates a git repository in a temp directory and makes it
// the working directory for the duration of the test.
func setupRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}

	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	git(t, dir, "init", "-q", "--initial-branch=main")
	git(t, dir, "config", "user.email", "test@example.com")
	git(t, dir, "config", "user.name", "Test User")
	git(t, dir, "config", "commit.gpgsign", "false")

	return dir
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

func commitAt(t *testing.T, dir, name, date string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(name+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	git(t, dir, "add", "-A")
	cmd := exec.Command("git", "commit", "-q", "-m", "add "+name)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_DATE="+date,
		"GIT_COMMITTER_DATE="+date,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git commit failed: %v\n%s", err, out)
	}
}

// --- status handler tests ---

func TestHandleStatus(t *testing.T) {
	dir := setupRepo(t)
	commitAt(t, dir, "a.txt", "2024-01-01T00:00:00Z")
	git(t, dir, "tag", "v1.2.0")

	_, out, err := handleStatus(context.Background(), &mcp.CallToolRequest{}, StatusInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Branch != "main" {
		t.Errorf("Branch = %q, want %q", out.Branch, "main")
	}
	if !out.Pristine {
		t.Error("Pristine = false, want true")
	}
	if out.LatestTag == nil || out.LatestTag.Name != "v1.2.0" {
		t.Errorf("LatestTag = %+v, want v1.2.0", out.LatestTag)
	}
}

func TestHandleStatus_OutsideRepository(t *testing.T) {
	requireGit(t)
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	_, _, err = handleStatus(context.Background(), &mcp.CallToolRequest{}, StatusInput{})
	if err == nil {
		t.Error("expected error outside a repository, got nil")
	}
}

// --- latest_version handler tests ---

func TestHandleLatestVersion(t *testing.T) {
	dir := setupRepo(t)
	commitAt(t, dir, "a.txt", "2024-01-01T00:00:00Z")
	for _, tag := range []string{"v1.0.0", "v1.0.0-rc.2", "v0.9.0", "nightly"} {
		git(t, dir, "tag", tag)
	}

	t.Run("default globs", func(t *testing.T) {
		_, out, err := handleLatestVersion(context.Background(), &mcp.CallToolRequest{}, LatestVersionInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Found {
			t.Fatal("Found = false, want true")
		}
		if out.Tag != "v1.0.0" {
			t.Errorf("Tag = %q, want %q", out.Tag, "v1.0.0")
		}
		if out.Kind != "release" {
			t.Errorf("Kind = %q, want %q", out.Kind, "release")
		}
	})

	t.Run("globs excluding every tag", func(t *testing.T) {
		_, out, err := handleLatestVersion(context.Background(), &mcp.CallToolRequest{}, LatestVersionInput{
			Globs: []string{"release-*"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Found {
			t.Errorf("Found = true, want false: %+v", out)
		}
		if out.Kind != "none" {
			t.Errorf("Kind = %q, want %q", out.Kind, "none")
		}
	})
}

// --- age handler tests ---

func TestHandleAge(t *testing.T) {
	dir := setupRepo(t)
	commitAt(t, dir, "a.txt", "2024-01-01T00:00:00Z")
	git(t, dir, "tag", "v1.0.0")
	commitAt(t, dir, "b.txt", "2024-02-01T00:00:00Z")

	_, out, err := handleAge(context.Background(), &mcp.CallToolRequest{}, AgeInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.InitCommit == nil || out.LastCommit == nil || out.LatestTag == nil {
		t.Fatalf("missing events: %+v", out)
	}
	if out.InitCommit.Seconds <= out.LastCommit.Seconds {
		t.Errorf("init age %d not older than last commit age %d", out.InitCommit.Seconds, out.LastCommit.Seconds)
	}
	if out.LatestTag.Ref != "v1.0.0" {
		t.Errorf("LatestTag.Ref = %q, want %q", out.LatestTag.Ref, "v1.0.0")
	}
}

func TestHandleAge_NoTags(t *testing.T) {
	dir := setupRepo(t)
	commitAt(t, dir, "a.txt", "2024-01-01T00:00:00Z")

	_, out, err := handleAge(context.Background(), &mcp.CallToolRequest{}, AgeInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.LatestTag != nil {
		t.Errorf("LatestTag = %+v, want nil", out.LatestTag)
	}
	if out.InitCommit == nil {
		t.Error("InitCommit is nil, want non-nil")
	}
}

// --- check_ref handler tests ---

func TestHandleCheckRef(t *testing.T) {
	dir := setupRepo(t)
	commitAt(t, dir, "a.txt", "2024-01-01T00:00:00Z")
	git(t, dir, "tag", "v1.0.0")

	tests := []struct {
		name   string
		input  CheckRefInput
		exists bool
	}{
		{"existing branch", CheckRefInput{Kind: "branch", Name: "main"}, true},
		{"existing tag", CheckRefInput{Kind: "tag", Name: "v1.0.0"}, true},
		{"missing tag", CheckRefInput{Kind: "tag", Name: "v9.9.9"}, false},
		{"existing commit", CheckRefInput{Kind: "commit", Name: "HEAD"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := handleCheckRef(context.Background(), &mcp.CallToolRequest{}, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Exists != tt.exists {
				t.Errorf("Exists = %v, want %v", out.Exists, tt.exists)
			}
		})
	}
}

func TestHandleCheckRef_UnknownKind(t *testing.T) {
	setupRepo(t)

	_, _, err := handleCheckRef(context.Background(), &mcp.CallToolRequest{}, CheckRefInput{Kind: "worktree", Name: "x"})
	if err == nil {
		t.Error("expected error for unknown kind, got nil")
	}
}

// --- Server registration test ---

func TestNewServer_RegistersTools(t *testing.T) {
	server := NewServer("test-version")
	if server == nil {
		t.Fatal("NewServer returned nil")
	}
}
