package clippy

import (
	"errors"
	"strings"
	"testing"

	"github.com/jamacku/sarif-go/pkg/convert"
)

const envelopeLine = `{"reason":"compiler-message","package_id":"demo 0.1.0","message":{"message":"unneeded ` + "`return`" + ` statement","code":{"code":"clippy::needless_return","explanation":null},"level":"warning","spans":[{"file_name":"src/main.rs","byte_start":100,"byte_end":110,"line_start":10,"line_end":10,"column_start":5,"column_end":15,"is_primary":true}]}}`

const artifactLine = `{"reason":"compiler-artifact","package_id":"demo 0.1.0","target":{"name":"demo"}}`

const buildFinishedLine = `{"reason":"build-finished","success":true}`

const bareDiagnosticLine = `{"message":"this loop never actually loops","code":{"code":"clippy::never_loop","explanation":null},"level":"error","spans":[{"file_name":"src/lib.rs","line_start":3,"line_end":5,"column_start":1,"column_end":2,"is_primary":true}]}`

const summaryLine = `{"reason":"compiler-message","message":{"message":"1 warning emitted","code":null,"level":"warning","spans":[]}}`

const multiSpanLine = `{"reason":"compiler-message","message":{"message":"this argument is passed by value","code":{"code":"clippy::needless_pass_by_value","explanation":null},"level":"warning","spans":[{"file_name":"file.rs","line_start":10,"line_end":10,"column_start":5,"column_end":9,"is_primary":true},{"file_name":"file.rs","line_start":12,"line_end":12,"column_start":1,"column_end":4,"is_primary":false}]}}`

func TestConvert(t *testing.T) {
	converter := NewConverter()

	t.Run("envelope-diagnostic", func(t *testing.T) {
		report, err := converter.Convert([]byte(envelopeLine))
		if err != nil {
			t.Fatal(err)
		}
		run := report.Runs[0]
		if run.Tool.Driver.Name != "clippy" {
			t.Fatalf("got: %s want: clippy", run.Tool.Driver.Name)
		}
		if len(run.Results) != 1 {
			t.Fatalf("got: %d results want: 1", len(run.Results))
		}
		result := run.Results[0]
		if *result.RuleID != "clippy::needless_return" {
			t.Fatalf("got: %s", *result.RuleID)
		}
		if *result.Level != convert.LevelWarning {
			t.Fatalf("got: %s want: warning", *result.Level)
		}
		region := result.Locations[0].PhysicalLocation.Region
		if *region.StartLine != 10 || *region.StartColumn != 5 {
			t.Fatalf("got: %d:%d want: 10:5", *region.StartLine, *region.StartColumn)
		}
		if *region.EndColumn != 15 {
			t.Fatalf("got end column: %d want: 15", *region.EndColumn)
		}
	})

	t.Run("primary-and-secondary-spans", func(t *testing.T) {
		report, err := converter.Convert([]byte(multiSpanLine))
		if err != nil {
			t.Fatal(err)
		}
		results := report.Runs[0].Results
		if len(results) != 1 {
			t.Fatalf("got: %d results want: 1", len(results))
		}
		locations := results[0].Locations
		if len(locations) != 2 {
			t.Fatalf("got: %d locations want: 2", len(locations))
		}
		first := locations[0].PhysicalLocation.Region
		second := locations[1].PhysicalLocation.Region
		if *first.StartLine != 10 || *first.StartColumn != 5 {
			t.Fatalf("primary location got: %d:%d want: 10:5", *first.StartLine, *first.StartColumn)
		}
		if *second.StartLine != 12 || *second.StartColumn != 1 {
			t.Fatalf("secondary location got: %d:%d want: 12:1", *second.StartLine, *second.StartColumn)
		}
	})

	t.Run("bare-diagnostic", func(t *testing.T) {
		// Without the cargo envelope the top-level message field is a
		// plain string, not a nested diagnostic object.
		report, err := converter.Convert([]byte(bareDiagnosticLine))
		if err != nil {
			t.Fatal(err)
		}
		result := report.Runs[0].Results[0]
		if *result.RuleID != "clippy::never_loop" {
			t.Fatalf("got: %s", *result.RuleID)
		}
		if *result.Level != convert.LevelError {
			t.Fatalf("got: %s want: error", *result.Level)
		}
		if *result.Message.Text != "this loop never actually loops" {
			t.Fatalf("got: %s", *result.Message.Text)
		}
		region := result.Locations[0].PhysicalLocation.Region
		if *region.StartLine != 3 || *region.EndLine != 5 {
			t.Fatalf("got: %d-%d want: 3-5", *region.StartLine, *region.EndLine)
		}
	})

	t.Run("non-diagnostic-lines-skipped", func(t *testing.T) {
		input := strings.Join([]string{artifactLine, envelopeLine, summaryLine, buildFinishedLine, ""}, "\n")
		report, err := converter.Convert([]byte(input))
		if err != nil {
			t.Fatal(err)
		}
		if got := len(report.Runs[0].Results); got != 1 {
			t.Fatalf("got: %d results want: 1", got)
		}
	})

	t.Run("order-preserved", func(t *testing.T) {
		input := strings.Join([]string{multiSpanLine, envelopeLine, bareDiagnosticLine}, "\n")
		report, err := converter.Convert([]byte(input))
		if err != nil {
			t.Fatal(err)
		}
		results := report.Runs[0].Results
		wantOrder := []string{"clippy::needless_pass_by_value", "clippy::needless_return", "clippy::never_loop"}
		if len(results) != len(wantOrder) {
			t.Fatalf("got: %d results want: %d", len(results), len(wantOrder))
		}
		for i, want := range wantOrder {
			if *results[i].RuleID != want {
				t.Fatalf("result %d got: %s want: %s", i, *results[i].RuleID, want)
			}
		}
	})

	t.Run("rule-catalog", func(t *testing.T) {
		input := strings.Join([]string{envelopeLine, envelopeLine, multiSpanLine}, "\n")
		report, err := converter.Convert([]byte(input))
		if err != nil {
			t.Fatal(err)
		}
		rules := report.Runs[0].Tool.Driver.Rules
		if len(rules) != 2 {
			t.Fatalf("got: %d rules want: 2", len(rules))
		}
		if rules[0].ID != "clippy::needless_return" {
			t.Fatalf("got: %s want first-seen rule first", rules[0].ID)
		}
		if rules[0].HelpURI == nil || !strings.Contains(*rules[0].HelpURI, "needless_return") {
			t.Fatal("want clippy lint index help uri")
		}
	})

	t.Run("malformed-line", func(t *testing.T) {
		input := envelopeLine + "\n{not json"
		_, err := converter.Convert([]byte(input))
		if !errors.Is(err, convert.ErrParse) {
			t.Fatalf("want ErrParse got: %v", err)
		}
		if !strings.Contains(err.Error(), "line 2") {
			t.Fatalf("want line context in error, got: %v", err)
		}
	})

	t.Run("empty-input", func(t *testing.T) {
		report, err := converter.Convert([]byte("\n\n"))
		if err != nil {
			t.Fatal(err)
		}
		if got := len(report.Runs[0].Results); got != 0 {
			t.Fatalf("got: %d results want: 0", got)
		}
	})
}
