package main

import (
	"os"

	"github.com/regenkit/regen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
