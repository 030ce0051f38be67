package types

// Position is a location in a source file. Line and Column are 1-based.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule     string   `json:"rule"`
	Category string   `json:"category,omitempty"`
	Filename string   `json:"filename"`
	Message  string   `json:"message"`
	Note     string   `json:"note,omitempty"`
	Severity Severity `json:"severity"`
	Start    Position `json:"start"`
	End      Position `json:"end"`
}

// ConfigRule carries the per-rule settings from the configuration file.
// Options are validated by each rule; unknown keys are rejected.
type ConfigRule struct {
	Severity Severity       `yaml:"severity,omitempty"`
	Pattern  string         `yaml:"pattern,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}
