package main

import (
	"os"

	"github.com/ricardobranco777/susepkg/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
