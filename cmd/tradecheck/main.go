package main

import (
	"fmt"
	"os"

	"github.com/tradecheck/tradecheck/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tradecheck:", err)
		os.Exit(1)
	}
}
