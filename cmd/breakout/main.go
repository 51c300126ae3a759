package main

import (
	"os"

	"github.com/dkim-quant/breakout/cmd/breakout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
