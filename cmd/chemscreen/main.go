package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"

	"github.com/ppiankov/chemscreen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprint(os.Stderr, pterm.Error.Sprintln(err))
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprint(os.Stderr, pterm.Info.Sprintln(hint))
		}
		os.Exit(1)
	}
}
