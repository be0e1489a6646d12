package main

import (
	"os"

	"github.com/musegate-dev/musegate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
