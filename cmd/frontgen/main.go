// Command frontgen scaffolds Next.js, React, Vue and design-system projects
// through framework agents, and serves the agents over JSON-RPC and MCP.
package main

import (
	"fmt"
	"os"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		os.Exit(1)
	}
}
