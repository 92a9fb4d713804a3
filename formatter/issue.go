package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	tt "github.com/gnoswap-labs/fitch/internal/types"
)

const tabWidth = 8

const issueTemplate = `{{header .Rule .Severity .Padding .Filename .Line .Column}}
{{snippet .Snippet .Line .Padding -}}
{{marker .Snippet .Column .Padding}}
{{message .Message .Padding}}
`

var issueTmpl = template.Must(template.New("issue").Funcs(template.FuncMap{
	"header":  header,
	"snippet": snippet,
	"marker":  marker,
	"message": message,
}).Parse(issueTemplate))

// IssueData is the view of an issue passed to the template.
type IssueData struct {
	Rule     string
	Severity tt.Severity
	Filename string
	Line     int
	Column   int
	Message  string
	Snippet  string
	Padding  string
}

// FormatIssues renders issues in a compiler-like layout with the offending
// line and a caret under the reported column. lines is the script source;
// when it does not cover an issue, the command recorded in the issue is
// shown instead.
func FormatIssues(issues []tt.Issue, lines []string) string {
	var b strings.Builder
	for _, issue := range issues {
		b.WriteString(formatIssue(issue, lines))
		b.WriteString("\n")
	}
	return b.String()
}

func formatIssue(issue tt.Issue, lines []string) string {
	snippetLine := issue.Command
	if issue.Line > 0 && issue.Line <= len(lines) {
		snippetLine = strings.TrimRight(lines[issue.Line-1], "\r")
	}
	width := len(fmt.Sprint(issue.Line))

	data := IssueData{
		Rule:     issue.Rule,
		Severity: issue.Severity,
		Filename: issue.Filename,
		Line:     issue.Line,
		Column:   issue.Column,
		Message:  issue.Message,
		Snippet:  snippetLine,
		Padding:  strings.Repeat(" ", width),
	}

	var buf bytes.Buffer
	if err := issueTmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("error formatting issue: %v\n", err)
	}
	return buf.String()
}

// template helpers

func header(rule string, severity tt.Severity, padding, filename string, line, column int) string {
	var s string
	switch severity {
	case tt.SeverityError:
		s = errorStyle.Sprint("error: ")
	case tt.SeverityWarning:
		s = warningStyle.Sprint("warning: ")
	default:
		s = infoStyle.Sprint("info: ")
	}
	s += ruleStyle.Sprint(rule) + "\n"
	s += lineStyle.Sprintf("%s--> ", padding)
	if line > 0 {
		s += fileStyle.Sprintf("%s:%d:%d", filename, line, column)
	} else {
		s += fileStyle.Sprint(filename)
	}
	return s
}

func snippet(text string, line int, padding string) string {
	s := lineStyle.Sprintf("%s |\n", padding)
	if text == "" || line <= 0 {
		return s
	}
	return s + lineStyle.Sprintf("%d | ", line) + strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth)) + "\n"
}

func marker(text string, column int, padding string) string {
	s := lineStyle.Sprintf("%s | ", padding)
	if text == "" || column <= 0 {
		return s
	}
	return s + strings.Repeat(" ", visualColumn(text, column)) + messageStyle.Sprint("^")
}

func message(msg, padding string) string {
	return lineStyle.Sprintf("%s = ", padding) + messageStyle.Sprint(msg)
}

// visualColumn converts a 1-based character column into the number of
// cells before it, expanding tabs to the width used by snippet.
func visualColumn(line string, column int) int {
	cells := 0
	n := 1
	for _, ch := range line {
		if n == column {
			break
		}
		if ch == '\t' {
			cells += tabWidth
		} else {
			cells++
		}
		n++
	}
	if n < column {
		cells += column - n
	}
	return cells
}
