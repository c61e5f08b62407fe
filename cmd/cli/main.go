package main

import (
	"os"

	"github.com/courtly-dev/courtly/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
