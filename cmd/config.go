package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jamacku/sarif-go/pkg/validate"
)

// Config holds output defaults that can be set once in a file instead of
// on every invocation. Flags take precedence over file values.
type Config struct {
	Pretty      bool             `yaml:"pretty"`
	SrcRoot     string           `yaml:"src-root"`
	MinLevel    string           `yaml:"min-level,omitempty"`
	ToolVersion string           `yaml:"tool-version,omitempty"`
	Limits      *validate.Limits `yaml:"limits,omitempty"`
}

// LoadConfig reads the YAML configuration file, returning a zero config
// when no filename is given.
func LoadConfig(filename string) (Config, error) {
	var config Config
	if filename == "" {
		return config, nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return config, err
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return config, err
	}
	return config, nil
}

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "prints a new configuration file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limits := validate.DefaultLimits()
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(Config{Limits: &limits})
		},
	}

	cmd.AddCommand(initCmd)

	return cmd
}
