// Command redis-cli is a standalone driver for the SET command
// surface, grounded on the single cmd/<binary>/main.go entrypoint
// shape used across the example pack: build the root cobra.Command
// from the app's wiring package, execute it, exit non-zero on error.
package main

import (
	"fmt"
	"os"

	"github.com/vpol/redis/internal/cliapp"
	"github.com/vpol/redis/internal/config"
)

func main() {
	root := cliapp.New(config.Default())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
