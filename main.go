package main

import (
	"os"

	"github.com/Bindhushree2529/image-restore-lab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
