package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/heartwood/internal/config"
	"github.com/gorewood/heartwood/internal/output"
)

func TestLatestCommand(t *testing.T) {
	dir := setupRepo(t)
	commitAt(t, dir, "a.txt", "2024-01-01T00:00:00Z")
	for _, tag := range []string{"1.0.0", "1.0.0-rc.2", "1.0.0-rc.10", "0.9.0", "nightly"} {
		git(t, dir, "tag", tag)
	}

	t.Run("release outranks pre-releases", func(t *testing.T) {
		stdout, _, err := runCommand(t, "latest")
		if err != nil {
			t.Fatalf("latest failed: %v", err)
		}
		if got := strings.TrimSpace(stdout); got != "1.0.0" {
			t.Errorf("latest = %q, want %q", got, "1.0.0")
		}
	})

	t.Run("base flag", func(t *testing.T) {
		stdout, _, err := runCommand(t, "latest", "--base")
		if err != nil {
			t.Fatalf("latest --base failed: %v", err)
		}
		if got := strings.TrimSpace(stdout); got != "1.0.0" {
			t.Errorf("latest --base = %q, want %q", got, "1.0.0")
		}
	})

	t.Run("json output", func(t *testing.T) {
		stdout, _, err := runCommand(t, "latest", "--json")
		if err != nil {
			t.Fatalf("latest --json failed: %v", err)
		}
		var data map[string]any
		if jsonErr := json.Unmarshal([]byte(stdout), &data); jsonErr != nil {
			t.Fatalf("output is not valid JSON: %v\n%s", jsonErr, stdout)
		}
		if data["version"] != "1.0.0" || data["kind"] != "release" {
			t.Errorf("json = %v, want version 1.0.0 release", data)
		}
	})

	t.Run("glob excluding every version tag", func(t *testing.T) {
		_, _, err := runCommand(t, "latest", "--glob", "release-*")
		if output.GetExitCode(err) != output.ExitNotFound {
			t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitNotFound)
		}
	})
}

func TestLatestCommand_PreReleaseOnly(t *testing.T) {
	dir := setupRepo(t)
	commitAt(t, dir, "a.txt", "2024-01-01T00:00:00Z")
	git(t, dir, "tag", "1.0.0-rc.2")
	git(t, dir, "tag", "1.0.0-rc.10")

	stdout, _, err := runCommand(t, "latest")
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != "1.0.0-rc.10" {
		t.Errorf("latest = %q, want %q (numeric tie-break)", got, "1.0.0-rc.10")
	}
}

func TestLatestCommand_MalformedConfig(t *testing.T) {
	dir := setupRepo(t)
	commitAt(t, dir, "a.txt", "2024-01-01T00:00:00Z")
	git(t, dir, "tag", "1.0.0")
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("tag_globs: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	stdout, stderr, err := runCommand(t, "latest")
	if output.GetExitCode(err) != output.ExitSystemError {
		t.Fatalf("exit code = %d, want %d", output.GetExitCode(err), output.ExitSystemError)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want no version output on config failure", stdout)
	}
	if !strings.Contains(stderr, "config") {
		t.Errorf("stderr = %q, want config parse error", stderr)
	}
}

func TestLatestCommand_NoTags(t *testing.T) {
	dir := setupRepo(t)
	commitAt(t, dir, "a.txt", "2024-01-01T00:00:00Z")

	t.Run("not found without fallback", func(t *testing.T) {
		_, stderr, err := runCommand(t, "latest")
		if output.GetExitCode(err) != output.ExitNotFound {
			t.Fatalf("exit code = %d, want %d", output.GetExitCode(err), output.ExitNotFound)
		}
		if !strings.Contains(stderr, "no version tags") {
			t.Errorf("stderr = %q, want mention of missing tags", stderr)
		}
	})

	t.Run("fallback flag", func(t *testing.T) {
		stdout, _, err := runCommand(t, "latest", "--fallback", "0.0.0")
		if err != nil {
			t.Fatalf("latest --fallback failed: %v", err)
		}
		if got := strings.TrimSpace(stdout); got != "0.0.0" {
			t.Errorf("latest = %q, want fallback %q", got, "0.0.0")
		}
	})

	t.Run("fallback from environment", func(t *testing.T) {
		t.Setenv("HEARTWOOD_FALLBACK", "0.1.0")
		stdout, _, err := runCommand(t, "latest")
		if err != nil {
			t.Fatalf("latest failed: %v", err)
		}
		if got := strings.TrimSpace(stdout); got != "0.1.0" {
			t.Errorf("latest = %q, want env fallback %q", got, "0.1.0")
		}
	})
}
