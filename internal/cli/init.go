package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pinesmith/pineguard/internal/lockstate"
	"github.com/pinesmith/pineguard/internal/model"
	"github.com/pinesmith/pineguard/internal/policy"
	"github.com/pinesmith/pineguard/internal/project"
)

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing guard.yaml")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold the guard layout under the workspace root",
	Long: "Creates the .claude directory, a commented guard.yaml, the\n" +
		"user-content directory, and an unlocked state file. Idempotent;\n" +
		"existing files are kept unless --force is given.",
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root := rootFlag
	if root == "" {
		var err error
		root, err = project.Resolve()
		if err != nil {
			return err
		}
	}

	cfgPath := policy.ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0755); err != nil {
		return fmt.Errorf("create .claude directory: %w", err)
	}

	if _, err := os.Stat(cfgPath); err == nil && !initForce {
		fmt.Printf("kept existing %s (use --force to overwrite)\n", cfgPath)
	} else {
		if err := os.WriteFile(cfgPath, []byte(policy.DefaultConfigYAML()), 0644); err != nil {
			return fmt.Errorf("write guard.yaml: %w", err)
		}
		fmt.Printf("wrote %s\n", cfgPath)
	}

	cfg, err := policy.Load(cfgPath)
	if err != nil {
		return err
	}

	contentDir := filepath.Join(root, filepath.FromSlash(cfg.UserContentDir))
	if err := os.MkdirAll(contentDir, 0755); err != nil {
		return fmt.Errorf("create user-content directory: %w", err)
	}

	statePath := filepath.Join(root, filepath.FromSlash(cfg.StateFile))
	if _, err := os.Stat(statePath); os.IsNotExist(err) {
		if err := os.WriteFile(statePath, []byte(string(model.Unlocked)+"\n"), 0644); err != nil {
			return fmt.Errorf("write state file: %w", err)
		}
		fmt.Printf("wrote %s (unlocked)\n", statePath)
	}

	fmt.Println(policy.StatusLine(lockstate.NewFileStore(statePath).Read().State))
	return nil
}
