// Package main provides the entry point for the indexkit CLI.
package main

import (
	"os"

	"github.com/dmitrymomot/indexkit/cmd/indexkit/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
