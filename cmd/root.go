// Package cmd wires the sarif-go command line interface. All collaborators
// are injected through CLIConfig so commands stay testable.
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamacku/sarif-go/internal/log"
	"github.com/jamacku/sarif-go/pkg/convert"
)

var (
	ErrorFileAccess = errors.New("file access")
	ErrorEncoding   = errors.New("encoding")
	ErrorConversion = errors.New("conversion")
	ErrorValidation = errors.New("validation")
	ErrorUserInput  = errors.New("user error")
)

type CLIConfig struct {
	Version    string
	PipedInput *os.File
	Converters []convert.Converter
}

func NewRootCommand(config CLIConfig) *cobra.Command {
	var verbose bool
	command := &cobra.Command{
		Use:     "sarif-go",
		Short:   "Convert lint tool diagnostics into SARIF",
		Version: config.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			log.SetVerbose(verbose)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	command.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose debug output")
	command.PersistentFlags().String("config", "", "Configuration file with output defaults")

	// Commands
	for _, converter := range config.Converters {
		command.AddCommand(NewConvertCommand(converter, config.PipedInput))
	}
	command.AddCommand(NewAutoConvertCommand(config.Converters, config.PipedInput))
	command.AddCommand(NewSummaryCommand(config.PipedInput))
	command.AddCommand(NewValidateCmd(config.PipedInput))
	command.AddCommand(NewConfigCmd())
	command.AddCommand(NewVersionCmd(config.Version))

	return command
}

func NewVersionCmd(version string) *cobra.Command {
	command := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println("A utility for converting lint tool diagnostics into SARIF")
			cmd.Println("Version:", version)
			return nil
		},
	}

	return command
}
