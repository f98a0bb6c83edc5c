package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statusJSON bool

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Machine-readable output")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workspace root, lock state, and loaded policy",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	g, err := newGuard()
	if err != nil {
		return err
	}

	read := g.LockState()

	if statusJSON {
		out, err := json.MarshalIndent(map[string]any{
			"root":        g.Root(),
			"lock_state":  string(read.State),
			"state_token": read.Token,
			"policy_hash": g.PolicyHash(),
			"audit_log":   g.AuditLogPath(),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Workspace root: %s\n", g.Root())
	fmt.Printf("Lock state:     %s\n", read.State)
	if read.Present && !read.Recognized {
		fmt.Printf("Warning:        state file holds unrecognized token %q\n", read.Token)
	}
	fmt.Printf("Policy hash:    %s\n", g.PolicyHash())
	fmt.Printf("Audit log:      %s\n", g.AuditLogPath())
	return nil
}
