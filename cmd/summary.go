package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/spf13/cobra"

	"github.com/jamacku/sarif-go/internal/fs"
	"github.com/jamacku/sarif-go/pkg/convert"
	"github.com/jamacku/sarif-go/pkg/format"
)

// NewSummaryCommand pretty prints a per-rule table for a SARIF file,
// ordered most severe first.
func NewSummaryCommand(pipedFile *os.File) *cobra.Command {
	command := &cobra.Command{
		Use:     "summary [FILE]",
		Short:   "Pretty print a summary of a SARIF file",
		Example: "  sarif-go shellcheck script-report.json | sarif-go summary",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := ""
			if len(args) == 1 {
				filename = args[0]
			}
			raw, err := fs.ReadInput(filename, pipedFile)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrorFileAccess, err)
			}
			report, err := convert.FromJSON(raw)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrorEncoding, err)
			}
			return writeSummary(cmd.OutOrStdout(), report)
		},
	}

	return command
}

type ruleSummary struct {
	level     string
	results   int
	locations int
	message   string
}

func writeSummary(w io.Writer, report *sarif.Report) error {
	for _, run := range report.Runs {
		toolName := ""
		if run.Tool.Driver != nil {
			toolName = run.Tool.Driver.Name
		}
		summaries, order := summarizeRun(run)

		table := format.NewTable()
		table.AppendRow("Rule", "Level", "Results", "Locations", "Example Message")
		for _, ruleID := range order {
			s := summaries[ruleID]
			table.AppendRow(
				ruleID,
				s.level,
				strconv.Itoa(s.results),
				strconv.Itoa(s.locations),
				format.Summarize(s.message, 60, format.ClipRight),
			)
		}
		table.SetSort(1, format.NewCatagoricLess([]string{
			convert.LevelError, convert.LevelWarning, convert.LevelNote, convert.LevelNone,
		}))
		sort.Stable(table)

		if _, err := fmt.Fprintf(w, "%s: %s results\n", toolName, humanize.Comma(int64(len(run.Results)))); err != nil {
			return err
		}
		if _, err := format.NewTableWriter(table).WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

func summarizeRun(run *sarif.Run) (map[string]*ruleSummary, []string) {
	summaries := map[string]*ruleSummary{}
	var order []string
	for _, result := range run.Results {
		ruleID := ""
		if result.RuleID != nil {
			ruleID = *result.RuleID
		}
		s, seen := summaries[ruleID]
		if !seen {
			s = &ruleSummary{}
			if result.Level != nil {
				s.level = *result.Level
			}
			if result.Message.Text != nil {
				s.message = *result.Message.Text
			}
			summaries[ruleID] = s
			order = append(order, ruleID)
		}
		s.results++
		s.locations += len(result.Locations)
	}
	return summaries, order
}
