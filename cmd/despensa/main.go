// Package main is the entry point for the despensa server.
package main

import (
	"os"

	"github.com/jpmardones/despensa/cmd/despensa/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
