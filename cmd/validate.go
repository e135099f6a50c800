package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamacku/sarif-go/pkg/convert"
	"github.com/jamacku/sarif-go/pkg/validate"
)

// NewValidateCmd gates a SARIF file against the per-level result limits in
// the configuration file. Exit status carries the verdict, so CI can fail
// a pipeline step on new findings.
func NewValidateCmd(pipedFile *os.File) *cobra.Command {
	command := &cobra.Command{
		Use:     "validate [FILE]",
		Short:   "Validate a SARIF file against result limits set in the configuration file",
		Example: "  sarif-go validate results.sarif --config sarif-go.yaml",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readRaw(args, pipedFile)
			if err != nil {
				return err
			}
			report, err := convert.FromJSON(raw)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrorEncoding, err)
			}

			configFilename, _ := cmd.Flags().GetString("config")
			config, err := LoadConfig(configFilename)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrorUserInput, err)
			}
			limits := validate.DefaultLimits()
			if config.Limits != nil {
				limits = *config.Limits
			}

			if err := validate.Validate(report, limits); err != nil {
				return fmt.Errorf("%w: %v", ErrorValidation, err)
			}
			cmd.Println("Validation successful")
			return nil
		},
	}

	return command
}
