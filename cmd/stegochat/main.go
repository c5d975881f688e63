package main

import (
	"os"

	"stegochat/cmd/stegochat/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
