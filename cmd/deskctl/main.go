package main

import (
	"os"
)

func main() {
	if err := NewCLI(os.Stdout).CreateCommands().Execute(); err != nil {
		os.Exit(1)
	}
}
