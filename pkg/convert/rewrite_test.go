package convert

import (
	"testing"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

func TestRelativizeURIs(t *testing.T) {
	newReport := func(t *testing.T, uri string) *sarifReportFixture {
		t.Helper()
		builder := NewRunBuilder("clang-tidy")
		region, err := NewRegion(Pos{Line: 1}, Pos{})
		if err != nil {
			t.Fatal(err)
		}
		builder.AddResult(Rule{ID: "r"}, LevelWarning, "m", []*sarif.Location{NewLocation(uri, region)})
		report, err := builder.Build()
		if err != nil {
			t.Fatal(err)
		}
		return &sarifReportFixture{report}
	}

	t.Run("inside-root", func(t *testing.T) {
		fixture := newReport(t, "/home/ci/project/src/main.cpp")
		RelativizeURIs(fixture.Report, "/home/ci/project")
		if got := fixture.firstURI(); got != "src/main.cpp" {
			t.Fatalf("got: %s want: src/main.cpp", got)
		}
	})

	t.Run("outside-root", func(t *testing.T) {
		fixture := newReport(t, "/usr/include/stdio.h")
		RelativizeURIs(fixture.Report, "/home/ci/project")
		if got := fixture.firstURI(); got != "/usr/include/stdio.h" {
			t.Fatalf("got: %s want untouched path", got)
		}
	})

	t.Run("empty-root-is-noop", func(t *testing.T) {
		fixture := newReport(t, "src/main.cpp")
		RelativizeURIs(fixture.Report, "")
		if got := fixture.firstURI(); got != "src/main.cpp" {
			t.Fatalf("got: %s want: src/main.cpp", got)
		}
	})

	t.Run("trailing-slash-root", func(t *testing.T) {
		fixture := newReport(t, "/repo/Dockerfile")
		RelativizeURIs(fixture.Report, "/repo/")
		if got := fixture.firstURI(); got != "Dockerfile" {
			t.Fatalf("got: %s want: Dockerfile", got)
		}
	})
}

func TestSetToolVersion(t *testing.T) {
	newReport := func(t *testing.T) *sarif.Report {
		t.Helper()
		builder := NewRunBuilder("shellcheck")
		builder.AddResult(Rule{ID: "SC2086"}, LevelWarning, "m", nil)
		report, err := builder.Build()
		if err != nil {
			t.Fatal(err)
		}
		return report
	}

	t.Run("stamps-every-run", func(t *testing.T) {
		report := newReport(t)
		SetToolVersion(report, "0.9.0")
		if got := *report.Runs[0].Tool.Driver.Version; got != "0.9.0" {
			t.Fatalf("got: %s want: 0.9.0", got)
		}
	})

	t.Run("empty-version-is-noop", func(t *testing.T) {
		report := newReport(t)
		SetToolVersion(report, "")
		if report.Runs[0].Tool.Driver.Version != nil {
			t.Fatal("want no version stamped")
		}
	})
}

type sarifReportFixture struct {
	*sarif.Report
}

func (f *sarifReportFixture) firstURI() string {
	return *f.Runs[0].Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI
}
