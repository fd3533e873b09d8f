package main

import (
	"os"

	"vanish/cmd/vanish/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
