package main

import (
	"fmt"
	"os"

	"github.com/nhle/problem-catalog/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "probcat: %v\n", err)
		os.Exit(1)
	}
}
