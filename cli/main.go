package main

import (
	"os"

	"github.com/sparsick/testcontainers-gitserver/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
