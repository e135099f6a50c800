package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamacku/sarif-go/internal/fs"
	"github.com/jamacku/sarif-go/internal/log"
	"github.com/jamacku/sarif-go/pkg/convert"
)

// NewConvertCommand builds one subcommand per wired converter. Input comes
// from the FILE argument or piped standard input, matching the upstream
// tool pipelines these converters sit behind.
func NewConvertCommand(converter convert.Converter, pipedFile *os.File) *cobra.Command {
	command := &cobra.Command{
		Use:     fmt.Sprintf("%s [FILE]", converter.Tool()),
		Short:   fmt.Sprintf("Convert %s output into SARIF", converter.Tool()),
		Example: fmt.Sprintf("  %s -f json script.sh | sarif-go %s -o results.sarif", converter.Tool(), converter.Tool()),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readRaw(args, pipedFile)
			if err != nil {
				return err
			}
			return writeConverted(cmd, converter, raw)
		},
	}

	addOutputFlags(command)

	return command
}

// NewAutoConvertCommand converts without naming the tool, picking the
// first wired converter that recognizes the input.
func NewAutoConvertCommand(converters []convert.Converter, pipedFile *os.File) *cobra.Command {
	command := &cobra.Command{
		Use:     "convert [FILE]",
		Short:   "Detect the tool that produced FILE and convert it into SARIF",
		Example: "  sarif-go convert hadolint-report.json",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readRaw(args, pipedFile)
			if err != nil {
				return err
			}
			converter, err := convert.DetectConverter(raw, converters)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrorUserInput, err)
			}
			log.Debugf("detected %s output", converter.Tool())
			return writeConverted(cmd, converter, raw)
		},
	}

	addOutputFlags(command)

	return command
}

func addOutputFlags(command *cobra.Command) {
	command.Flags().StringP("output", "o", "", "Output file; writes to stdout if none is given")
	command.Flags().Bool("pretty", false, "Indent the SARIF output")
	command.Flags().String("src-root", "", "Strip this directory prefix from artifact paths")
	command.Flags().String("min-level", "", "Drop results below this level (none, note, warning, error)")
	command.Flags().String("tool-version", "", "Record this tool version in the SARIF driver metadata")
}

func readRaw(args []string, pipedFile *os.File) ([]byte, error) {
	filename := ""
	if len(args) == 1 {
		filename = args[0]
	}
	raw, err := fs.ReadInput(filename, pipedFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrorFileAccess, err)
	}
	return raw, nil
}

func writeConverted(cmd *cobra.Command, converter convert.Converter, raw []byte) error {
	fileConfig, err := configFromFlags(cmd)
	if err != nil {
		return err
	}

	log.Debugf("converting %d bytes of %s output", len(raw), converter.Tool())
	report, err := converter.Convert(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrorConversion, err)
	}
	convert.RelativizeURIs(report, fileConfig.SrcRoot)
	convert.FilterMinLevel(report, fileConfig.MinLevel)
	convert.SetToolVersion(report, fileConfig.ToolVersion)

	outputFilename, _ := cmd.Flags().GetString("output")
	w, closeOutput, err := fs.OutputWriter(outputFilename, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrorFileAccess, err)
	}
	if err := convert.WriteJSON(report, w, fileConfig.Pretty); err != nil {
		_ = closeOutput()
		return fmt.Errorf("%w: %v", ErrorEncoding, err)
	}
	return closeOutput()
}

// configFromFlags merges the optional configuration file with command
// flags; set flags win.
func configFromFlags(cmd *cobra.Command) (Config, error) {
	configFilename, _ := cmd.Flags().GetString("config")
	config, err := LoadConfig(configFilename)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrorUserInput, err)
	}
	if cmd.Flags().Changed("pretty") {
		config.Pretty, _ = cmd.Flags().GetBool("pretty")
	}
	if cmd.Flags().Changed("src-root") {
		config.SrcRoot, _ = cmd.Flags().GetString("src-root")
	}
	if cmd.Flags().Changed("min-level") {
		config.MinLevel, _ = cmd.Flags().GetString("min-level")
	}
	if cmd.Flags().Changed("tool-version") {
		config.ToolVersion, _ = cmd.Flags().GetString("tool-version")
	}
	if config.MinLevel != "" && !convert.ValidLevel(config.MinLevel) {
		return Config{}, fmt.Errorf("%w: unknown level %q", ErrorUserInput, config.MinLevel)
	}
	return config, nil
}
