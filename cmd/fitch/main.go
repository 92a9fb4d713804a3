package main

import (
	"os"

	"github.com/gnoswap-labs/fitch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
