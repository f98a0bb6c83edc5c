package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinesmith/pineguard/internal/guard"
)

var (
	checkStdin  bool
	checkFormat string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkStdin, "stdin", false, "Read candidate content from stdin instead of the second argument")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text|json)")
}

var checkCmd = &cobra.Command{
	Use:   "check <path> [content]",
	Short: "Dry-run a write decision",
	Long: "Evaluates a candidate write exactly like the hook but records no\n" +
		"audit entry. Exit code 0 if the write would be permitted, 1 if it\n" +
		"would be denied.",
	Args: cobra.RangeArgs(1, 2),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	content := ""
	hasContent := false
	if checkStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read content from stdin: %w", err)
		}
		content, hasContent = string(data), true
	} else if len(args) > 1 {
		content, hasContent = args[1], true
	}

	g, err := newGuard()
	if err != nil {
		return err
	}

	d := g.EvaluateWrite(args[0], content, hasContent)

	switch checkFormat {
	case "json":
		out, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		for _, m := range d.Messages {
			fmt.Println(m)
		}
	}

	// Dry-run denial exits 1, distinct from the hook's abort code.
	if denied(guard.Enforce(d, args[0])) {
		os.Exit(1)
	}
	return nil
}
