package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pinesmith/pineguard/internal/mcp"
	"github.com/pinesmith/pineguard/internal/policy"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the guard over MCP stdio transport",
	Long: "Exposes pineguard_check, pineguard_status, pineguard_lock, and\n" +
		"pineguard_unlock as MCP tools. guard.yaml changes are hot-reloaded\n" +
		"while serving.",
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	server, err := mcp.New(mcp.Config{Root: rootFlag})
	if err != nil {
		return fmt.Errorf("create MCP server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	reloader, err := mcp.NewReloader(server, []string{
		policy.ConfigPath(server.Guard().Root()),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: policy hot-reload disabled: %v\n", err)
	} else {
		go reloader.Run(ctx)
	}

	fmt.Fprintf(os.Stderr, "pineguard MCP server on stdio (root: %s)\n", server.Guard().Root())
	return server.Run(ctx)
}
