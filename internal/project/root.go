// Package project resolves the workspace root that anchors all
// relative-path decisions. The guard binary installs at a fixed
// offset beneath the root (.claude/hooks/bin/pineguard), so the
// root is derived from the executable location, never from the
// caller's working directory.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvRoot overrides root resolution when set. Used by tests and
// non-standard installs.
const EnvRoot = "PINEGUARD_ROOT"

// installDepth is how many directories the binary sits beneath the
// root: .claude/hooks/bin.
const installDepth = 3

// Resolve returns the workspace root directory.
func Resolve() (string, error) {
	if root := os.Getenv(EnvRoot); root != "" {
		return filepath.Clean(root), nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("cannot resolve executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	root := filepath.Dir(exe)
	for i := 0; i < installDepth; i++ {
		root = filepath.Dir(root)
	}
	return root, nil
}

// Rel makes target relative to root, normalized to forward slashes.
// Returns an error for paths that escape the root; callers treat
// those as Protected rather than failing the invocation.
func Rel(root, target string) (string, error) {
	abs := target
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(filepath.Clean(root), abs)
	if err != nil {
		return "", fmt.Errorf("cannot relativize %q against %q: %w", target, root, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("path %q escapes workspace root", target)
	}
	return rel, nil
}
