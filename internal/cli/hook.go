package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinesmith/pineguard/internal/guard"
)

// denyExitCode tells the host hook mechanism to abort the write and
// surface our output to the operator.
const denyExitCode = 2

var hookStdin bool

func init() {
	rootCmd.AddCommand(hookCmd)
	hookCmd.Flags().BoolVar(&hookStdin, "stdin", false, "Read candidate content from stdin instead of the second argument")
}

var hookCmd = &cobra.Command{
	Use:   "hook <path> [content]",
	Short: "Pre-write hook entry point",
	Long: "Evaluates one candidate write: the destination path plus the literal\n" +
		"content about to be written. Prints the decision, advisories, and the\n" +
		"current lock state, records an audit entry, and exits 0 to permit the\n" +
		"write or 2 to abort it.",
	Args: cobra.RangeArgs(1, 2),
	RunE: runHook,
}

func runHook(cmd *cobra.Command, args []string) error {
	content, hasContent, err := readContent(args)
	if err != nil {
		return err
	}

	g, err := newGuard()
	if err != nil {
		return err
	}

	d := g.EvaluateWrite(args[0], content, hasContent)

	for _, m := range d.Messages {
		fmt.Println(m)
	}

	// Best-effort side channel: audit failures never change the
	// decision.
	if err := g.RecordAudit(args[0], d); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit record failed: %v\n", err)
	}

	if denied(guard.Enforce(d, args[0])) {
		os.Exit(denyExitCode)
	}
	return nil
}

// readContent resolves the candidate content from the second
// positional argument or stdin. Absent content is legal: it only
// suppresses the content advisories.
func readContent(args []string) (string, bool, error) {
	if hookStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("read content from stdin: %w", err)
		}
		return string(data), true, nil
	}
	if len(args) > 1 {
		return args[1], true, nil
	}
	return "", false, nil
}
