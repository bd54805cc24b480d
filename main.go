package main

import (
	"fmt"
	"os"

	"github.com/temirov/uncommitted/cmd/cli"
)

// main runs the uncommitted CLI and reports fatal errors on stderr.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintln(os.Stderr, executionError)
		os.Exit(1)
	}
}
