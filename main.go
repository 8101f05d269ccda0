package main

import (
	"fmt"
	"os"

	"github.com/jwhalen/go-docket-metrics/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
