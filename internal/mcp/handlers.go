package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pinesmith/pineguard/internal/model"
)

// --- Input/Output types ---

// CheckInput defines parameters for the pineguard_check tool.
// Content is a pointer so an explicitly empty write stays distinct
// from unknown content; only the latter suppresses the content
// advisories.
type CheckInput struct {
	Path    string  `json:"path" jsonschema:"destination file path, absolute or workspace-relative"`
	Content *string `json:"content,omitempty" jsonschema:"candidate file content, omit if unknown"`
}

// CheckOutput contains the guard decision.
type CheckOutput struct {
	Allowed   bool     `json:"allowed"`
	Category  string   `json:"category"`
	LockState string   `json:"lock_state"`
	Messages  []string `json:"messages"`
}

// StatusInput is empty; the tool takes no parameters.
type StatusInput struct{}

// StatusOutput reports guard configuration and state.
type StatusOutput struct {
	Root       string `json:"root"`
	LockState  string `json:"lock_state"`
	PolicyHash string `json:"policy_hash"`
}

// ToggleInput is empty; lock and unlock take no parameters.
type ToggleInput struct{}

// ToggleOutput confirms the resulting state.
type ToggleOutput struct {
	LockState string `json:"lock_state"`
}

// --- Handlers ---

func (s *Server) handleCheck(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	content, hasContent := "", false
	if input.Content != nil {
		content, hasContent = *input.Content, true
	}
	d := s.guard.EvaluateWrite(input.Path, content, hasContent)

	out := CheckOutput{
		Allowed:   d.Allowed,
		Category:  string(d.Category),
		LockState: string(d.LockState),
		Messages:  d.Messages,
	}
	if !d.Allowed {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleStatus(ctx context.Context, req *mcpsdk.CallToolRequest, input StatusInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	return nil, StatusOutput{
		Root:       s.guard.Root(),
		LockState:  string(s.guard.LockState().State),
		PolicyHash: s.guard.PolicyHash(),
	}, nil
}

func (s *Server) handleLock(ctx context.Context, req *mcpsdk.CallToolRequest, input ToggleInput) (*mcpsdk.CallToolResult, ToggleOutput, error) {
	if err := s.guard.SetLockState(model.Locked); err != nil {
		return nil, ToggleOutput{}, err
	}
	return nil, ToggleOutput{LockState: string(model.Locked)}, nil
}

func (s *Server) handleUnlock(ctx context.Context, req *mcpsdk.CallToolRequest, input ToggleInput) (*mcpsdk.CallToolResult, ToggleOutput, error) {
	if err := s.guard.SetLockState(model.Unlocked); err != nil {
		return nil, ToggleOutput{}, err
	}
	return nil, ToggleOutput{LockState: string(model.Unlocked)}, nil
}
