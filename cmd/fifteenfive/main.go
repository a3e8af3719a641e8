package main

import (
	"os"

	"github.com/darylhandley/15five-utils/internal/infrastructure/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
