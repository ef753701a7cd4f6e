// Command overlayctl checks, composes and previews overlay configurations.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/studio/cmd/overlayctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
