package nolint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNolintRules(t *testing.T) {
	t.Parallel()
	result := parseIgnoreRuleNames("rule1, rule2,rule3,")
	assert.Len(t, result, 3)
	for _, rule := range []string{"rule1", "rule2", "rule3"} {
		assert.Contains(t, result, rule)
	}
}

func TestParseDirective(t *testing.T) {
	t.Parallel()
	tests := []struct {
		comment string
		rules   []string
		wantErr bool
	}{
		{comment: "nolint", rules: nil},
		{comment: " nolint:late-premise", rules: []string{"late-premise"}},
		{comment: "nolint: open-scope, invalid-step", rules: []string{"open-scope", "invalid-step"}},
		{comment: "nolint:", wantErr: true},
		{comment: "nolinter", wantErr: true},
		{comment: "just a note", wantErr: true},
	}
	for _, tc := range tests {
		rules, err := parseDirective(tc.comment)
		if tc.wantErr {
			assert.Error(t, err, tc.comment)
			continue
		}
		require.NoError(t, err, tc.comment)
		assert.Len(t, rules, len(tc.rules), tc.comment)
		for _, r := range tc.rules {
			assert.Contains(t, rules, r)
		}
	}
}

func TestIsNolint(t *testing.T) {
	t.Parallel()
	source := `premise p
assume q
# nolint
premise r
premise s
premise t #nolint:late-premise
#nolint:invalid-step

copy 42
undo
`
	manager := Parse([]byte(source))

	tests := []struct {
		rule     string
		line     int
		expected bool
	}{
		{"anyrule", 1, false}, // no directive before the first command
		{"anyrule", 4, true},  // covered by the standalone nolint on line 3
		{"anyrule", 5, false}, // only the next command is covered
		{"late-premise", 6, true},
		{"invalid-step", 6, false},
		{"invalid-step", 9, true}, // blank lines are skipped
		{"late-premise", 9, false},
		{"invalid-step", 10, false},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, manager.IsNolint(test.line, test.rule), "line %d rule %s", test.line, test.rule)
	}
}

func TestFileLevelNolint(t *testing.T) {
	t.Parallel()
	source := `# exercise 3
#nolint:open-scope

assume p
copy 1
`
	manager := Parse([]byte(source))
	assert.True(t, manager.IsNolint(4, "open-scope"))
	assert.True(t, manager.IsNolint(6, "open-scope"))
	assert.False(t, manager.IsNolint(5, "invalid-step"))
}
