package main

import (
	"os"

	"github.com/frankigoes6/ProjetFoncier/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
