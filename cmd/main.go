package main

// Entry point of scatter-drawio
// Runs the cobra root command and maps failures to exit code 1

import (
	"fmt"
	"os"

	"scatter-drawio/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		if !commands.Reported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
