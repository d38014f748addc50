package main

import (
	"os"

	"github.com/bkeenke/bkcloud-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
