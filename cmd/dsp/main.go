// Package main is the entry point for the dsp CLI client.
package main

import (
	"github.com/jpmardones/despensa/cmd/dsp/cmd"
)

func main() {
	cmd.Execute()
}
