package convert

// SARIF result levels. The four values are closed by the schema.
const (
	LevelNone    = "none"
	LevelNote    = "note"
	LevelWarning = "warning"
	LevelError   = "error"
)

// DefaultLevel is used when a tool reports a severity token outside its
// known vocabulary. A missing severity should never block an otherwise
// valid finding.
const DefaultLevel = LevelWarning

// LevelOrDefault resolves a tool severity token against that tool's fixed
// mapping table. Unknown tokens resolve to DefaultLevel, never an error.
func LevelOrDefault(table map[string]string, token string) string {
	if level, ok := table[token]; ok {
		return level
	}
	return DefaultLevel
}
