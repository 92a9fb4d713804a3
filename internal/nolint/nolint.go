package nolint

import (
	"fmt"
	"strings"
)

const (
	commentPrefix = "#"
	nolintPrefix  = "nolint"
)

// Manager manages nolint scopes of one script and checks if a line is
// nolinted.
type Manager struct {
	scopes []nolintScope
}

// nolintScope represents a range of lines where nolint applies.
type nolintScope struct {
	rules map[string]struct{}
	start int
	end   int // inclusive; 0 means until the end of the script
}

// Parse collects the nolint directives of a proof script.
//
// A directive is a comment of the form "#nolint" or "#nolint:rule1,rule2".
// Placed after a command it applies to that line. On a line of its own it
// applies to the next command, and before the first command it applies to
// the whole script.
func Parse(src []byte) *Manager {
	lines := strings.Split(string(src), "\n")
	manager := Manager{}
	seenCommand := false

	for i, line := range lines {
		lineNo := i + 1
		code, comment, hasComment := strings.Cut(line, commentPrefix)
		inline := strings.TrimSpace(code) != ""

		if hasComment {
			rules, err := parseDirective(comment)
			if err == nil {
				ns := nolintScope{rules: rules, start: lineNo, end: lineNo}
				switch {
				case inline:
				case !seenCommand:
					ns.start, ns.end = 1, 0
				default:
					ns.end = nextCommandLine(lines, i+1)
				}
				manager.scopes = append(manager.scopes, ns)
			}
		}
		if inline {
			seenCommand = true
		}
	}
	return &manager
}

// parseDirective parses the text of a comment after the '#'.
func parseDirective(comment string) (map[string]struct{}, error) {
	text := strings.TrimSpace(comment)
	if !strings.HasPrefix(text, nolintPrefix) {
		return nil, fmt.Errorf("invalid nolint comment")
	}

	rest := text[len(nolintPrefix):]
	// A nolint comment can either have a list of rules after a colon (:)
	// or if no rules are specified, it applies to all rules
	if len(rest) > 0 && rest[0] != ':' {
		return nil, fmt.Errorf("invalid nolint comment format")
	}
	if len(rest) > 0 {
		rest = strings.TrimSpace(rest[1:])
		if rest == "" {
			return nil, fmt.Errorf("invalid nolint comment: no rules specified after colon")
		}
	}
	return parseIgnoreRuleNames(rest), nil
}

// parseIgnoreRuleNames parses the rule list from the nolint comment.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// nextCommandLine returns the 1-based number of the first line at or after
// index from that holds a command, or the last line when none does.
func nextCommandLine(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		code, _, _ := strings.Cut(lines[i], commentPrefix)
		if strings.TrimSpace(code) != "" {
			return i + 1
		}
	}
	return len(lines)
}

// IsNolint checks if a rule is suppressed on the given line.
func (m *Manager) IsNolint(line int, ruleName string) bool {
	for _, ns := range m.scopes {
		if line < ns.start || (ns.end != 0 && line > ns.end) {
			continue
		}
		// If the rules list is empty, nolint applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
