// cmd/skillgap/main.go
//
// This is the entry point for the skillgap CLI. Running `skillgap` opens the
// analyzer view in the current directory; `skillgap roles` prints the role
// fixtures.
//
// Flow:
// 1. Create .skillgap/ and load config.yaml
// 2. Open the session journal
// 3. Build the session from config and flags
// 4. Launch the TUI

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(runProgram).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
