// Command vesiclesim runs the vesicle electrochemistry engine from a
// configuration file and writes its recorded history as JSON.
package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/bielosheikin/vesiclesim/cmd/vesiclesim/internal/cli"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()
	if err := cli.Root().Execute(); err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}
