// Package classify maps workspace-relative paths to write categories.
// Classification is a pure function of the relative path string: it
// never consults file existence or content.
package classify

import (
	"path"
	"strings"

	"github.com/pinesmith/pineguard/internal/model"
)

// Rules holds the path policy a workspace is classified against.
// Deterministic string matching, no globbing.
type Rules struct {
	// AlwaysWritable is the exact-match allow-list of relative paths
	// that stay writable while locked (state and marker files).
	AlwaysWritable []string

	// UserContentDir is the relative prefix of the user-content
	// subtree. Everything at or beneath it stays writable.
	UserContentDir string

	// CriticalPrefixes are Protected sub-areas whose writes draw a
	// caution advisory in unlocked mode (agent personas, hooks).
	CriticalPrefixes []string
}

// Classify returns the category for a workspace-relative path.
func (r Rules) Classify(relPath string) model.Category {
	rel := normalize(relPath)

	for _, p := range r.AlwaysWritable {
		if rel == normalize(p) {
			return model.AlwaysWritable
		}
	}

	if underDir(rel, normalize(r.UserContentDir)) {
		return model.UserContent
	}

	return model.Protected
}

// IsCritical reports whether the path falls under a system-critical
// sub-area. Only meaningful for Protected paths.
func (r Rules) IsCritical(relPath string) bool {
	rel := normalize(relPath)
	for _, p := range r.CriticalPrefixes {
		if underDir(rel, normalize(p)) {
			return true
		}
	}
	return false
}

func normalize(p string) string {
	p = strings.TrimPrefix(path.Clean(strings.TrimSpace(p)), "./")
	return strings.TrimSuffix(p, "/")
}

func underDir(rel, dir string) bool {
	if dir == "" || dir == "." {
		return false
	}
	return rel == dir || strings.HasPrefix(rel, dir+"/")
}
