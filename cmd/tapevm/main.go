// Command tapevm runs programs for the eight-instruction tape language.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/tapevm/internal/cli"
)

func main() {
	err := cli.Execute()
	if err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			// Flag parsing and argument errors carry no output of their own.
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	os.Exit(cli.GetExitCode(err))
}
