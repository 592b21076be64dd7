// Command quanta runs scripted scenarios against the runtime and inspects
// its persisted storage.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/quanta/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
