package convert

import (
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

// Rule identifies one distinct lint rule referenced by a result. Only ID is
// required; descriptive fields are recorded on first sight of the id.
type Rule struct {
	ID               string
	Name             string
	ShortDescription string
	HelpURI          string
}

// RunBuilder accumulates one conversion's results and rule catalog into a
// single SARIF run. Results keep their call order; the rule catalog is
// deduplicated by id in first-seen order, first occurrence winning for
// descriptive metadata. One builder per Convert call, never shared.
type RunBuilder struct {
	toolName string
	infoURI  string

	results []*sarif.Result
	ruleIDs []string
	rules   map[string]*sarif.ReportingDescriptor
}

type RunOption func(*RunBuilder)

func WithInformationURI(uri string) RunOption {
	return func(b *RunBuilder) { b.infoURI = uri }
}

func NewRunBuilder(toolName string, options ...RunOption) *RunBuilder {
	b := &RunBuilder{
		toolName: toolName,
		rules:    map[string]*sarif.ReportingDescriptor{},
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// AddResult appends one finding and registers its rule in the catalog.
// Locations may be empty when the source diagnostic carried no resolvable
// position; the result is still recorded.
func (b *RunBuilder) AddResult(rule Rule, level string, message string, locations []*sarif.Location) {
	b.addRule(rule)
	result := &sarif.Result{
		RuleID:    &rule.ID,
		Level:     &level,
		Message:   *sarif.NewTextMessage(message),
		Locations: locations,
	}
	b.results = append(b.results, result)
}

func (b *RunBuilder) addRule(rule Rule) {
	if _, seen := b.rules[rule.ID]; seen {
		return
	}
	descriptor := &sarif.ReportingDescriptor{ID: rule.ID}
	if rule.Name != "" {
		name := rule.Name
		descriptor.Name = &name
	}
	if rule.ShortDescription != "" {
		descriptor.ShortDescription = sarif.NewMultiformatMessageString(rule.ShortDescription)
	}
	if rule.HelpURI != "" {
		uri := rule.HelpURI
		descriptor.HelpURI = &uri
	}
	b.ruleIDs = append(b.ruleIDs, rule.ID)
	b.rules[rule.ID] = descriptor
}

// Build assembles the finished single-run report. Every result's rule id
// must resolve to a catalog entry; a dangling reference is a converter bug
// and fails with ErrSchema.
func (b *RunBuilder) Build() (*sarif.Report, error) {
	run := sarif.NewRun(*sarif.NewTool(sarif.NewDriver(b.toolName)))
	if b.infoURI != "" {
		uri := b.infoURI
		run.Tool.Driver.InformationURI = &uri
	}
	for _, id := range b.ruleIDs {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, b.rules[id])
	}
	for _, result := range b.results {
		if result.RuleID == nil {
			return nil, fmt.Errorf("%w: result without a rule id", ErrSchema)
		}
		if _, ok := b.rules[*result.RuleID]; !ok {
			return nil, fmt.Errorf("%w: result references unknown rule '%s'", ErrSchema, *result.RuleID)
		}
		run.Results = append(run.Results, result)
	}

	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	report.AddRun(run)
	return report, nil
}
