package main

import (
	"fmt"
	"os"

	"github.com/caverna/vbump/cmd"
)

func main() {
	cmd.InitCommands()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Problem: %v\n", err)
		os.Exit(1)
	}
}
