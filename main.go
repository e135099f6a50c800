package main

import (
	"errors"
	"os"

	"github.com/jamacku/sarif-go/cmd"
	"github.com/jamacku/sarif-go/internal/fs"
	"github.com/jamacku/sarif-go/internal/log"
	"github.com/jamacku/sarif-go/pkg/convert"
	"github.com/jamacku/sarif-go/pkg/converters/clangtidy"
	"github.com/jamacku/sarif-go/pkg/converters/clippy"
	"github.com/jamacku/sarif-go/pkg/converters/hadolint"
	"github.com/jamacku/sarif-go/pkg/converters/shellcheck"
)

// CLIVersion is set at build time with -ldflags.
var CLIVersion = "dev"

const exitOk = 0
const exitSystemFail = 1
const exitUserInput = 2

func main() {
	os.Exit(run())
}

func run() int {
	config := cmd.CLIConfig{
		Version:    CLIVersion,
		PipedInput: fs.PipedFile(os.Stdin),
		Converters: []convert.Converter{
			clippy.NewConverter(),
			hadolint.NewConverter(),
			shellcheck.NewConverter(),
			clangtidy.NewConverter(),
		},
	}

	command := cmd.NewRootCommand(config)
	command.SilenceUsage = true

	if err := command.Execute(); err != nil {
		log.Errorf("%v", err)
		if errors.Is(err, cmd.ErrorUserInput) {
			return exitUserInput
		}
		return exitSystemFail
	}
	return exitOk
}
