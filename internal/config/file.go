package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/heartwood/internal/output"
)

// FileName is the per-repository configuration file, looked up at the
// repository root.
const FileName = ".heartwood.yml"

// Config holds the tunable behavior of heartwood.
type Config struct {
	// TagGlobs overrides the patterns used to enumerate version tags.
	// Empty means the built-in defaults (v[0-9]*, [0-9]*).
	TagGlobs []string `yaml:"tag_globs"`

	// Fallback is printed by `heartwood latest` when the repository has
	// no version tags, instead of exiting with a not-found code.
	// Empty disables the fallback.
	Fallback string `yaml:"fallback"`

	// Color is the default color mode: "auto", "always", or "never".
	Color string `yaml:"color"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	return Config{Color: "auto"}
}

// Load resolves the effective configuration for a repository.
// Precedence, lowest to highest: defaults, the global config dir file,
// the repository's .heartwood.yml, then environment variables
// (HEARTWOOD_TAG_GLOBS as a comma-separated list, HEARTWOOD_FALLBACK).
// A missing file is not an error; a malformed one is.
func Load(repoRoot string) (Config, error) {
	cfg := Default()

	if dir := Dir(); dir != "" {
		if err := mergeFile(filepath.Join(dir, "config.yml"), &cfg); err != nil {
			return cfg, err
		}
	}
	if repoRoot != "" {
		if err := mergeFile(filepath.Join(repoRoot, FileName), &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)

	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	return cfg, nil
}

// mergeFile reads a YAML config file into cfg. Fields absent from the
// file keep their current values.
func mergeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return output.NewSystemErrorWithCause("reading config file "+path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return output.NewSystemErrorWithCause("parsing config file "+path, err)
	}
	return nil
}

// applyEnv overlays environment variable overrides.
func applyEnv(cfg *Config) {
	if globs := os.Getenv("HEARTWOOD_TAG_GLOBS"); globs != "" {
		parts := strings.Split(globs, ",")
		cfg.TagGlobs = cfg.TagGlobs[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TagGlobs = append(cfg.TagGlobs, p)
			}
		}
	}
	if fb := os.Getenv("HEARTWOOD_FALLBACK"); fb != "" {
		cfg.Fallback = fb
	}
}
