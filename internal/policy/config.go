package policy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/pinesmith/pineguard/internal/classify"
)

// Config holds all configurable guard parameters. Constructed from
// defaults, optionally overlaid by .claude/guard.yaml so tests and
// operators can substitute alternate policies.
type Config struct {
	// StateFile is the lock-state file, relative to the root.
	StateFile string `yaml:"state_file"`

	// AuditLog is the JSONL decision log, relative to the root.
	AuditLog string `yaml:"audit_log"`

	// AlwaysWritable is the exact-path allow-list.
	AlwaysWritable []string `yaml:"always_writable"`

	// UserContentDir is the user-content subtree prefix.
	UserContentDir string `yaml:"user_content_dir"`

	// CriticalPrefixes draw a caution advisory in unlocked mode.
	CriticalPrefixes []string `yaml:"critical_prefixes"`

	// ScriptExtension selects files for content advisories.
	ScriptExtension string `yaml:"script_extension"`

	// TemplateFilename and TemplateSentinel drive the rename
	// reminder: a file still named after the template whose content
	// no longer carries the sentinel should have been renamed.
	TemplateFilename string `yaml:"template_filename"`
	TemplateSentinel string `yaml:"template_sentinel"`

	// VersionPattern must match the first content line of a script.
	VersionPattern string `yaml:"version_pattern"`

	versionRE *regexp.Regexp
}

// DefaultConfig returns the built-in guard policy.
func DefaultConfig() *Config {
	cfg := &Config{
		StateFile: ".claude/write-lock.state",
		AuditLog:  ".claude/guard-audit.jsonl",
		AlwaysWritable: []string{
			".claude/write-lock.state",
			".claude/.onboarding-complete",
			".claude/session-state.md",
			".claude/last-session.md",
		},
		UserContentDir:   "projects",
		CriticalPrefixes: []string{".claude/agents", ".claude/hooks"},
		ScriptExtension:  ".pine",
		TemplateFilename: "blank.pine",
		TemplateSentinel: "Blank Template",
		VersionPattern:   `^\s*//@version=\d+\s*$`,
	}
	if err := cfg.finalize(); err != nil {
		// The built-in pattern always compiles.
		panic(err)
	}
	return cfg
}

// ConfigPath returns the guard.yaml location under the given root.
func ConfigPath(root string) string {
	return filepath.Join(root, ".claude", "guard.yaml")
}

// Load reads guard configuration from a YAML file. Missing file
// returns defaults. Invalid YAML or an uncompilable version pattern
// returns an error.
func Load(path string) (*Config, error) {
	cfg, _, err := LoadWithHash(path)
	return cfg, err
}

// LoadWithHash loads guard configuration and returns its SHA-256
// hash, computed over the raw YAML bytes on disk. When no file
// exists (defaults used), the hash is the SHA-256 of empty input.
func LoadWithHash(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256(nil)
			return DefaultConfig(), "sha256:" + hex.EncodeToString(h[:]), nil
		}
		return nil, "", fmt.Errorf("read guard config: %w", err)
	}

	h := sha256.Sum256(data)
	hash := "sha256:" + hex.EncodeToString(h[:])

	// Start with defaults, YAML overwrites only specified fields.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", fmt.Errorf("parse guard config: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, "", err
	}

	return cfg, hash, nil
}

// Rules returns the classify view of this config.
func (c *Config) Rules() classify.Rules {
	return classify.Rules{
		AlwaysWritable:   c.AlwaysWritable,
		UserContentDir:   c.UserContentDir,
		CriticalPrefixes: c.CriticalPrefixes,
	}
}

func (c *Config) finalize() error {
	re, err := regexp.Compile(c.VersionPattern)
	if err != nil {
		return fmt.Errorf("invalid version_pattern %q: %w", c.VersionPattern, err)
	}
	c.versionRE = re
	return nil
}

// DefaultConfigYAML returns a commented YAML string for init.
func DefaultConfigYAML() string {
	return `# pineguard policy configuration
# Generated by: pineguard init
#
# Decision order (cannot be changed):
#   1. Resolve lock state (missing file -> unlocked)
#   2. Classify the path (always_writable / user content / protected)
#   3. Decide: locked + protected -> deny, everything else -> allow
#   4. Non-blocking advisories (system files, script content, location)
#   5. Trailing lock-state status line

# Lock-state file, relative to the workspace root.
state_file: .claude/write-lock.state

# Hash-chained JSONL decision log, relative to the workspace root.
audit_log: .claude/guard-audit.jsonl

# Exact relative paths that stay writable while locked.
always_writable:
  - .claude/write-lock.state
  - .claude/.onboarding-complete
  - .claude/session-state.md
  - .claude/last-session.md

# User-content subtree: always writable, the canonical home for
# authored scripts.
user_content_dir: projects

# Protected sub-areas that draw a caution advisory when written in
# unlocked mode.
critical_prefixes:
  - .claude/agents
  - .claude/hooks

# Script advisories.
script_extension: .pine
template_filename: blank.pine
template_sentinel: "Blank Template"
version_pattern: '^\s*//@version=\d+\s*$'
`
}
