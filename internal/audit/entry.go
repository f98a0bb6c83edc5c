package audit

// Entry is one line in the hash-chained JSONL decision log.
// All fields are scalars (no map[string]any) to guarantee
// deterministic json.Marshal field order for reproducible hashing.
type Entry struct {
	Timestamp    string `json:"ts"`
	InvocationID string `json:"invocation_id"`
	Path         string `json:"path"`
	Category     string `json:"category"`
	LockState    string `json:"lock_state"`
	Decision     string `json:"decision"`
	Advisories   int    `json:"advisories"`
	PolicyHash   string `json:"policy_hash"`
	PrevHash     string `json:"prev_hash"`
}
