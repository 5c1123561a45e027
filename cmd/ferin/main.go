// Package main provides the ferin command-line compiler.
package main

import (
	"os"

	"github.com/leapstack-labs/ferin/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
