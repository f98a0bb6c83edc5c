package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinesmith/pineguard/internal/guard"
)

var rootFlag string

var rootCmd = &cobra.Command{
	Use:   "pineguard",
	Short: "Write-protection guard for a Pine Script workspace",
	Long: "Gates file writes behind a two-state lock. Locked workspaces only accept\n" +
		"writes to the user-content area and a small allow-list of marker files;\n" +
		"unlocked workspaces accept everything. Script files draw non-blocking\n" +
		"content advisories either way.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Workspace root (default: derived from the binary's install location)")
}

// newGuard builds a guard honoring the --root flag.
func newGuard() (*guard.Guard, error) {
	return guard.New(guard.Config{Root: rootFlag})
}

// denied reports whether err is the guard's write denial. The deny
// exit codes key off the error type, not the decision struct.
func denied(err error) bool {
	var de *guard.DeniedError
	return errors.As(err, &de)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
