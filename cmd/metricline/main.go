package main

import (
	"os"

	"github.com/arloliu/metricline/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
