// Package main is the command line interface to the sonavox speech
// naturalization pipeline.
//
// Usage:
//
//	sonavox [flags] <command> [args]
//
// Commands:
//
//	enhance   - Enhance an existing WAV file
//	say       - Synthesize text via the engine and enhance the result
//	speakers  - List the synthesis engine's voice styles
package main

import (
	"fmt"
	"os"

	"github.com/sonavox/sonavox/cmd/sonavox/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
