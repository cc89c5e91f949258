package main

import (
	"fmt"
	"os"

	"snapdeck/internal/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "snapdeck: %v\n", err)
		os.Exit(1)
	}
}
