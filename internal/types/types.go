package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity of a diagnostic.
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
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityOff:
		return "off"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a configuration value such as "warning" into a
// Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "off", "ignore":
		return SeverityOff, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseSeverity(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = parsed
	return nil
}

// ConfigRule is the per-diagnostic configuration.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}

// Issue is a problem found while replaying a proof script.
type Issue struct {
	Rule     string
	Filename string
	Line     int // 1-based
	Column   int // 1-based, counted in characters
	Command  string
	Message  string
	Severity Severity
}
