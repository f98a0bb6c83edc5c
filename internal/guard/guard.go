// Package guard composes the write-guard: policy evaluation over a
// workspace root, lock-state resolution, and the decision audit
// trail. The host tool's pre-write hook is the primary caller.
package guard

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pinesmith/pineguard/internal/audit"
	"github.com/pinesmith/pineguard/internal/lockstate"
	"github.com/pinesmith/pineguard/internal/model"
	"github.com/pinesmith/pineguard/internal/policy"
	"github.com/pinesmith/pineguard/internal/project"
)

// Config holds guard construction parameters.
type Config struct {
	// Root is the workspace root. Empty resolves via project.Resolve.
	Root string

	// PolicyPath overrides the guard.yaml location. Empty uses
	// <root>/.claude/guard.yaml.
	PolicyPath string
}

// DeniedError is returned when the lock policy blocks a write.
type DeniedError struct {
	RelPath   string
	LockState model.State
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("write blocked (%s): %s is protected", e.LockState, e.RelPath)
}

// Guard evaluates write requests against the workspace policy.
type Guard struct {
	root       string
	policyPath string

	mu         sync.Mutex
	cfg        *policy.Config
	policyHash string
	store      lockstate.Store
}

// New creates a Guard with loaded policy and a file-backed lock
// state store.
func New(cfg Config) (*Guard, error) {
	root := cfg.Root
	if root == "" {
		var err error
		root, err = project.Resolve()
		if err != nil {
			return nil, fmt.Errorf("resolve workspace root: %w", err)
		}
	}

	policyPath := cfg.PolicyPath
	if policyPath == "" {
		policyPath = policy.ConfigPath(root)
	}

	g := &Guard{root: root, policyPath: policyPath}
	if err := g.ReloadPolicy(); err != nil {
		return nil, err
	}
	return g, nil
}

// ReloadPolicy re-reads guard.yaml and rebuilds the lock-state
// store. Safe to call while serving.
func (g *Guard) ReloadPolicy() error {
	cfg, hash, err := policy.LoadWithHash(g.policyPath)
	if err != nil {
		return fmt.Errorf("load guard policy: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.cfg = cfg
	g.policyHash = hash
	g.store = lockstate.NewFileStore(g.AbsPath(cfg.StateFile))
	return nil
}

// Root returns the workspace root.
func (g *Guard) Root() string { return g.root }

// PolicyHash returns the hash of the loaded policy file.
func (g *Guard) PolicyHash() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.policyHash
}

// LockState resolves the current persisted lock state.
func (g *Guard) LockState() lockstate.Reading {
	g.mu.Lock()
	store := g.store
	g.mu.Unlock()
	return store.Read()
}

// SetLockState persists a new lock state.
func (g *Guard) SetLockState(state model.State) error {
	g.mu.Lock()
	store := g.store
	g.mu.Unlock()
	return store.Write(state)
}

// AbsPath joins a workspace-relative path onto the root.
func (g *Guard) AbsPath(rel string) string {
	return joinRoot(g.root, rel)
}

// AuditLogPath returns the absolute decision-log path.
func (g *Guard) AuditLogPath() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return joinRoot(g.root, g.cfg.AuditLog)
}

// EvaluateWrite decides one write request. Content absence (the
// host sent no body) is distinct from empty content: absence only
// suppresses the content advisories.
func (g *Guard) EvaluateWrite(target, content string, hasContent bool) model.Decision {
	req := model.WriteRequest{Content: content, HasContent: hasContent}

	rel, err := project.Rel(g.root, target)
	if err != nil {
		// Fail closed: paths outside the root classify as Protected.
		req.RelPath = target
		req.Escaped = true
	} else {
		req.RelPath = rel
	}

	g.mu.Lock()
	cfg := g.cfg
	store := g.store
	g.mu.Unlock()

	return policy.Evaluate(req, store.Read(), cfg)
}

// Enforce maps a decision to an error the caller can unwrap.
// Allowed decisions return nil.
func Enforce(d model.Decision, relPath string) error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{RelPath: relPath, LockState: d.LockState}
}

func joinRoot(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

// RecordAudit appends the decision to the JSONL audit log.
// Best-effort side channel: failures are returned for a stderr
// warning but never change the decision.
func (g *Guard) RecordAudit(target string, d model.Decision) error {
	rel, err := project.Rel(g.root, target)
	if err != nil {
		rel = target
	}

	log, err := audit.Open(g.AuditLogPath())
	if err != nil {
		return err
	}
	defer log.Close()

	decision := "deny"
	if d.Allowed {
		decision = "allow"
	}

	return log.Record(audit.Entry{
		Timestamp:    time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		InvocationID: uuid.NewString(),
		Path:         rel,
		Category:     string(d.Category),
		LockState:    string(d.LockState),
		Decision:     decision,
		Advisories:   d.Advisories,
		PolicyHash:   g.PolicyHash(),
	})
}
