// Package main is the entry point of the sqlequiv CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlequiv/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
