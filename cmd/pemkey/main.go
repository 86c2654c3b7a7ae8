package main

import (
	"os"

	"pemkey/cmd/pemkey/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
