package convert

import (
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

// RelativizeURIs rewrites every artifact URI in the report to be relative
// to root, leaving URIs outside root untouched. Lets CI produce
// repository-relative SARIF regardless of where the lint tool ran.
func RelativizeURIs(report *sarif.Report, root string) {
	if root == "" {
		return
	}
	prefix := filepath.ToSlash(root)
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	for _, run := range report.Runs {
		for _, result := range run.Results {
			for _, location := range result.Locations {
				rewriteURI(location, prefix)
			}
		}
	}
}

// SetToolVersion stamps the driver version on every run. None of the
// supported tools embed their own version in their output, so the caller
// supplies it, typically from a CLI flag.
func SetToolVersion(report *sarif.Report, version string) {
	if version == "" {
		return
	}
	for _, run := range report.Runs {
		if run.Tool.Driver == nil {
			continue
		}
		v := version
		run.Tool.Driver.Version = &v
	}
}

func rewriteURI(location *sarif.Location, prefix string) {
	if location.PhysicalLocation == nil || location.PhysicalLocation.ArtifactLocation == nil {
		return
	}
	artifact := location.PhysicalLocation.ArtifactLocation
	if artifact.URI == nil {
		return
	}
	relative := strings.TrimPrefix(*artifact.URI, prefix)
	artifact.URI = &relative
}
