package model

// State is the persisted write-protection state of the workspace.
type State string

const (
	Locked   State = "locked"
	Unlocked State = "unlocked"
)

// ParseState maps a raw state-file token to a State.
// Returns false if the token is neither recognized value.
func ParseState(token string) (State, bool) {
	switch State(token) {
	case Locked:
		return Locked, true
	case Unlocked:
		return Unlocked, true
	default:
		return Unlocked, false
	}
}

// Category classifies a write target relative to the workspace root.
type Category string

const (
	// AlwaysWritable covers the small allow-list of state and marker
	// files that stay writable in either lock state.
	AlwaysWritable Category = "always_writable"

	// UserContent covers the designated subtree for user-authored
	// artifacts, writable in either lock state.
	UserContent Category = "user_content"

	// Protected covers everything else: agent personas, hooks, docs,
	// templates, root config. Writable only while unlocked.
	Protected Category = "protected"
)

// WriteRequest describes one candidate write, resolved against the
// workspace root. Transient: exists for a single guard invocation.
type WriteRequest struct {
	// RelPath is the slash-separated path relative to the workspace
	// root. When Escaped is set it holds the cleaned original path
	// instead, for display only.
	RelPath string

	// Content is the literal bytes about to be written.
	Content string

	// HasContent distinguishes an empty write from an absent one.
	// Absent content suppresses the content advisories.
	HasContent bool

	// Escaped marks a path that could not be made relative to the
	// workspace root. Such paths classify as Protected (fail closed).
	Escaped bool
}

// Decision is the outcome of one write-guard evaluation.
type Decision struct {
	Allowed   bool     `json:"allowed"`
	Category  Category `json:"category"`
	LockState State    `json:"lock_state"`

	// Messages is the ordered human-readable output: the deny
	// explanation (if any), then advisories, then the trailing
	// status line. Advisories never affect Allowed.
	Messages []string `json:"messages"`

	// Advisories counts the non-blocking messages, excluding any
	// deny explanation and the trailing status line.
	Advisories int `json:"advisories"`
}
