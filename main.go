package main

import (
	"os"

	"github.com/Personal-Repositories-Space/prepme/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
