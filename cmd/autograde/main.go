// Command autograde grades student submissions against reference solutions.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/autograde/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
