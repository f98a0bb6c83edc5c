// Package mcp serves the write-guard over the Model Context
// Protocol, so MCP-capable hosts can consult the lock policy
// without shelling out to the hook binary.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pinesmith/pineguard/internal/guard"
)

// Config holds MCP server configuration.
type Config struct {
	Root       string
	PolicyPath string
}

// Server wraps the MCP SDK server around a Guard.
type Server struct {
	mcpServer *mcpsdk.Server
	guard     *guard.Guard
}

// New creates an MCP server with a loaded guard.
func New(cfg Config) (*Server, error) {
	g, err := guard.New(guard.Config{Root: cfg.Root, PolicyPath: cfg.PolicyPath})
	if err != nil {
		return nil, fmt.Errorf("create guard: %w", err)
	}

	s := &Server{guard: g}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "pineguard",
			Version: "1.0.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Guard exposes the underlying guard (reload, tests).
func (s *Server) Guard() *guard.Guard { return s.guard }

// Run starts the MCP server on stdio transport. Blocks until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// registerTools adds the pineguard tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "pineguard_check",
		Description: "Check whether a file write would be permitted under the current lock state, without writing or recording anything (dry-run).",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "pineguard_status",
		Description: "Report the workspace root, current lock state, and loaded policy hash.",
	}, s.handleStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "pineguard_lock",
		Description: "Lock the workspace: writes outside the user-content area and the allow-list will be denied.",
	}, s.handleLock)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "pineguard_unlock",
		Description: "Unlock the workspace: all writes are permitted (system files still draw advisories).",
	}, s.handleUnlock)
}
