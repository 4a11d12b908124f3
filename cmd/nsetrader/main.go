package main

import (
	"os"

	"nsetrader/cmd/nsetrader/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
