package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pinesmith/pineguard/internal/model"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".claude"), 0755); err != nil {
		t.Fatalf("mkdir .claude: %v", err)
	}
	s, err := New(Config{Root: root})
	if err != nil {
		t.Fatalf("create MCP server: %v", err)
	}
	return s, root
}

func TestCheckAllowed(t *testing.T) {
	s, root := newTestServer(t)
	ctx := context.Background()

	content := "//@version=6\nindicator(\"RSI\")"
	result, out, err := s.handleCheck(ctx, &mcpsdk.CallToolRequest{}, CheckInput{
		Path:    filepath.Join(root, "projects", "rsi.pine"),
		Content: &content,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatal("expected success, got error result")
	}
	if !out.Allowed {
		t.Fatalf("expected allowed, got %+v", out)
	}
	if out.Category != string(model.UserContent) {
		t.Errorf("category = %q, want user_content", out.Category)
	}
}

func TestCheckBlockedWhileLocked(t *testing.T) {
	s, root := newTestServer(t)
	ctx := context.Background()

	if err := s.guard.SetLockState(model.Locked); err != nil {
		t.Fatalf("lock: %v", err)
	}

	result, out, err := s.handleCheck(ctx, &mcpsdk.CallToolRequest{}, CheckInput{
		Path: filepath.Join(root, ".claude", "agents", "pine-developer.md"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected IsError result for blocked write")
	}
	if out.Allowed {
		t.Fatal("expected allowed=false")
	}
	if out.LockState != "locked" {
		t.Errorf("lock_state = %q, want locked", out.LockState)
	}
}

func hasMessage(messages []string, substr string) bool {
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestCheckEmptyContentDrawsVersionAdvisory(t *testing.T) {
	s, root := newTestServer(t)
	ctx := context.Background()

	// Explicitly empty content is a real candidate write; it lacks
	// the version declaration just like `check <path> ""` does.
	empty := ""
	_, out, err := s.handleCheck(ctx, &mcpsdk.CallToolRequest{}, CheckInput{
		Path:    filepath.Join(root, "projects", "a.pine"),
		Content: &empty,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hasMessage(out.Messages, "version declaration") {
		t.Errorf("empty content should draw the version advisory: %v", out.Messages)
	}
}

func TestCheckAbsentContentSuppressesContentAdvisories(t *testing.T) {
	s, root := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleCheck(ctx, &mcpsdk.CallToolRequest{}, CheckInput{
		Path: filepath.Join(root, "projects", "a.pine"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasMessage(out.Messages, "version declaration") {
		t.Errorf("omitted content should suppress the version advisory: %v", out.Messages)
	}
}

func TestLockUnlockRoundTrip(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleLock(ctx, &mcpsdk.CallToolRequest{}, ToggleInput{})
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if out.LockState != "locked" {
		t.Errorf("after lock: %q", out.LockState)
	}

	_, st, err := s.handleStatus(ctx, &mcpsdk.CallToolRequest{}, StatusInput{})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.LockState != "locked" {
		t.Errorf("status lock_state = %q, want locked", st.LockState)
	}
	if st.PolicyHash == "" {
		t.Error("status should report a policy hash")
	}

	_, out, err = s.handleUnlock(ctx, &mcpsdk.CallToolRequest{}, ToggleInput{})
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if out.LockState != "unlocked" {
		t.Errorf("after unlock: %q", out.LockState)
	}
}

func TestReloaderPicksUpPolicyChange(t *testing.T) {
	s, root := newTestServer(t)

	cfgPath := filepath.Join(root, ".claude", "guard.yaml")
	if err := os.WriteFile(cfgPath, []byte("user_content_dir: projects\n"), 0644); err != nil {
		t.Fatalf("seed guard.yaml: %v", err)
	}
	if err := s.guard.ReloadPolicy(); err != nil {
		t.Fatalf("initial reload: %v", err)
	}

	r, err := NewReloader(s, []string{cfgPath})
	if err != nil {
		t.Fatalf("NewReloader: %v", err)
	}
	if len(r.Paths()) != 1 {
		t.Fatalf("watched paths = %v", r.Paths())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	if err := os.WriteFile(cfgPath, []byte("user_content_dir: output\n"), 0644); err != nil {
		t.Fatalf("rewrite guard.yaml: %v", err)
	}

	target := filepath.Join(root, "output", "a.pine")
	s.guard.SetLockState(model.Locked)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if d := s.guard.EvaluateWrite(target, "", false); d.Allowed {
			cancel()
			<-done
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	cancel()
	<-done
	t.Fatal("policy change was not hot-reloaded within deadline")
}

func TestReloaderSkipsMissingPaths(t *testing.T) {
	s, root := newTestServer(t)

	r, err := NewReloader(s, []string{
		filepath.Join(root, "does-not-exist.yaml"),
		"",
	})
	if err != nil {
		t.Fatalf("NewReloader: %v", err)
	}
	if len(r.Paths()) != 0 {
		t.Errorf("watched paths = %v, want none", r.Paths())
	}
}
