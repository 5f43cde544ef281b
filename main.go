package main

import (
	"os"

	"groundedanalyst/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
