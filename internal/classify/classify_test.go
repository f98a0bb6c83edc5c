package classify

import (
	"testing"

	"github.com/pinesmith/pineguard/internal/model"
)

func testRules() Rules {
	return Rules{
		AlwaysWritable: []string{
			".claude/write-lock.state",
			".claude/.onboarding-complete",
			".claude/session-state.md",
			".claude/last-session.md",
		},
		UserContentDir:   "projects",
		CriticalPrefixes: []string{".claude/agents", ".claude/hooks"},
	}
}

func TestClassify(t *testing.T) {
	r := testRules()

	tests := []struct {
		rel  string
		want model.Category
	}{
		{".claude/write-lock.state", model.AlwaysWritable},
		{".claude/.onboarding-complete", model.AlwaysWritable},
		{".claude/session-state.md", model.AlwaysWritable},
		{".claude/last-session.md", model.AlwaysWritable},
		{"projects/rsi.pine", model.UserContent},
		{"projects/sub/deep.pine", model.UserContent},
		{"projects", model.UserContent},
		{".claude/agents/pine-developer.md", model.Protected},
		{".claude/hooks/before-write.sh", model.Protected},
		{"CLAUDE.md", model.Protected},
		{"notes.pine", model.Protected},
		{"docs/reference.md", model.Protected},
		// Prefix must match a whole path segment.
		{"projects-old/rsi.pine", model.Protected},
		// Exact allow-list entries do not extend to neighbors.
		{".claude/write-lock.state.bak", model.Protected},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			if got := r.Classify(tt.rel); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestClassifyNormalizesDotSegments(t *testing.T) {
	r := testRules()
	if got := r.Classify("./projects/../projects/a.pine"); got != model.UserContent {
		t.Errorf("cleaned path classification = %v, want user_content", got)
	}
}

func TestIsCritical(t *testing.T) {
	r := testRules()

	tests := []struct {
		rel  string
		want bool
	}{
		{".claude/agents/pine-developer.md", true},
		{".claude/hooks/before-write.sh", true},
		{".claude/hooks/bin/pineguard", true},
		{".claude/settings.json", false},
		{"projects/rsi.pine", false},
		{"CLAUDE.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			if got := r.IsCritical(tt.rel); got != tt.want {
				t.Errorf("IsCritical(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}
