package main

import (
	"os"

	"cribbage/cmd/cribbage/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
