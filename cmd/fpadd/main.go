// Command fpadd adds fixed-point decimal amounts.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/fpadd/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
