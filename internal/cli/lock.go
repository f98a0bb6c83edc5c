package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pinesmith/pineguard/internal/model"
	"github.com/pinesmith/pineguard/internal/policy"
)

func init() {
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(unlockCmd)
}

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Lock the workspace",
	Long: "Persists the locked state. While locked, writes outside the\n" +
		"user-content area and the allow-list are denied by the hook.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setState(model.Locked)
	},
}

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlock the workspace",
	Long:  "Persists the unlocked state. All writes are permitted while unlocked.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setState(model.Unlocked)
	},
}

func setState(state model.State) error {
	g, err := newGuard()
	if err != nil {
		return err
	}
	if err := g.SetLockState(state); err != nil {
		return err
	}
	fmt.Println(policy.StatusLine(state))
	return nil
}
