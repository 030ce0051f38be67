package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Severity is the reporting level of a rule.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// MarshalYAML writes the severity in its lowercase configuration form.
func (s Severity) MarshalYAML() (interface{}, error) {
	switch s {
	case SeverityError:
		return "error", nil
	case SeverityWarning:
		return "warning", nil
	case SeverityInfo:
		return "info", nil
	case SeverityOff:
		return "off", nil
	}
	return nil, fmt.Errorf("unknown severity %d", int(s))
}

// UnmarshalYAML reads a severity from its configuration form.
// An empty value keeps the default (error).
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch raw {
	case "", "error":
		*s = SeverityError
	case "warning", "warn":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	case "off":
		*s = SeverityOff
	default:
		return fmt.Errorf("unknown severity %q", raw)
	}
	return nil
}

// MarshalJSON reports the severity as its display string.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}
