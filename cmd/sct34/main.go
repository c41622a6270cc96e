// Package main is the entry point for the sct34 CLI.
package main

import (
	"os"

	"github.com/bibbank/sct34/cmd/sct34/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
