package cmd

import (
	"bytes"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/jamacku/sarif-go/pkg/convert"
	"github.com/jamacku/sarif-go/pkg/converters/clangtidy"
	"github.com/jamacku/sarif-go/pkg/converters/clippy"
	"github.com/jamacku/sarif-go/pkg/converters/hadolint"
	"github.com/jamacku/sarif-go/pkg/converters/shellcheck"
)

// Execute runs the root command with a space separated command string and
// returns captured output.
func Execute(commandString string, config CLIConfig) (string, error) {
	buf := new(bytes.Buffer)
	command := NewRootCommand(config)
	command.SetOut(buf)
	command.SetErr(buf)
	command.SetArgs(strings.Split(commandString, " "))
	err := command.Execute()
	return buf.String(), err
}

func testConfig() CLIConfig {
	return CLIConfig{
		Version: "test",
		Converters: []convert.Converter{
			clippy.NewConverter(),
			hadolint.NewConverter(),
			shellcheck.NewConverter(),
			clangtidy.NewConverter(),
		},
	}
}

func writeTempFile(t *testing.T, name string, content string) string {
	t.Helper()
	filename := path.Join(t.TempDir(), name)
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return filename
}

const shellcheckReport = `[{"file": "script.sh", "line": 3, "endLine": 3, "column": 6, "endColumn": 10, "level": "warning", "code": 2086, "message": "Double quote to prevent globbing and word splitting."}]`

const hadolintReport = `[{"line": 3, "code": "DL3006", "message": "Always tag the version of an image explicitly", "column": 1, "file": "Dockerfile", "level": "warning"}]`

const clangTidyReport = "src/foo.cpp:42:3: warning: unused variable 'x' [clang-diagnostic-unused-variable]\n"
