// pineguard is the write-protection guard for a Pine Script workspace.
// Installed at .claude/hooks/bin/pineguard beneath the workspace
// root; the host tool's pre-write hook invokes `pineguard hook`.
package main

import "github.com/pinesmith/pineguard/internal/cli"

func main() {
	cli.Execute()
}
