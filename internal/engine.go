package internal

import (
	"crypto/md5"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gnoswap-labs/fitch/internal/fitch"
	"github.com/gnoswap-labs/fitch/internal/nolint"
	"github.com/gnoswap-labs/fitch/internal/syntax"
	tt "github.com/gnoswap-labs/fitch/internal/types"
	"go.uber.org/zap"
)

// ScriptExt is the file extension of proof scripts.
const ScriptExt = ".fitch"

// Diagnostics reported while replaying a script.
const (
	RuleSyntaxError = "syntax-error"
	RuleInvalidStep = "invalid-step"
	RuleOpenScope   = "open-scope"
	RuleLatePremise = "late-premise"
	RuleUnreachable = "unreachable-command"
)

const commentDelimiter = "#"

var defaultSeverities = map[string]tt.Severity{
	RuleSyntaxError: tt.SeverityError,
	RuleInvalidStep: tt.SeverityError,
	RuleOpenScope:   tt.SeverityError,
	RuleLatePremise: tt.SeverityWarning,
	RuleUnreachable: tt.SeverityWarning,
}

// RuleNames returns the names of every diagnostic the engine can report.
func RuleNames() []string {
	return []string{RuleSyntaxError, RuleInvalidStep, RuleOpenScope, RuleLatePremise, RuleUnreachable}
}

// DefaultSeverity returns the built-in severity of a diagnostic.
func DefaultSeverity(rule string) (tt.Severity, bool) {
	s, ok := defaultSeverities[rule]
	return s, ok
}

// ErrNothingToUndo is returned by Execute when undo is used on an empty proof.
var ErrNothingToUndo = errors.New("nothing to undo")

// Engine replays proof scripts and reports diagnostics.
type Engine struct {
	severities   map[string]tt.Severity
	ignoredRules map[string]bool
	logger       *zap.Logger
}

// NewEngine creates an engine. rules overrides the default severities;
// unknown rule names are logged and skipped. logger may be nil.
func NewEngine(rules map[string]tt.ConfigRule, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		severities:   make(map[string]tt.Severity, len(defaultSeverities)),
		ignoredRules: make(map[string]bool),
		logger:       logger,
	}
	for name, s := range defaultSeverities {
		e.severities[name] = s
	}
	for name, rule := range rules {
		if _, ok := defaultSeverities[name]; !ok {
			e.logger.Warn("unknown rule in configuration", zap.String("rule", name))
			continue
		}
		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(name)
		}
		e.severities[name] = rule.Severity
	}
	return e
}

// IgnoreRule disables a diagnostic.
func (e *Engine) IgnoreRule(rule string) {
	e.ignoredRules[rule] = true
}

// Severity reports the effective severity of a diagnostic.
func (e *Engine) Severity(rule string) tt.Severity {
	if e.ignoredRules[rule] {
		return tt.SeverityOff
	}
	s, ok := e.severities[rule]
	if !ok {
		return tt.SeverityOff
	}
	return s
}

// Fingerprint identifies the effective severity of every diagnostic. Two
// engines with the same fingerprint report the same issues for a script.
func (e *Engine) Fingerprint() string {
	rules := RuleNames()
	sort.Strings(rules)

	h := md5.New()
	for _, rule := range rules {
		fmt.Fprintf(h, "%s=%s;", rule, e.Severity(rule))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Run replays the script stored in filename.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}
	return e.RunSource(filename, src), nil
}

// RunSource replays src, reporting issues against name.
func (e *Engine) RunSource(name string, src []byte) []tt.Issue {
	return e.Replay(name, src).Issues
}

// Result is the outcome of replaying a script.
type Result struct {
	Proof  *fitch.Proof
	Issues []tt.Issue
}

// replay carries the state of one script run.
type replay struct {
	engine *Engine
	name   string
	proof  *fitch.Proof
	issues []tt.Issue
	nolint *nolint.Manager
	// line each step was introduced on, to locate open scopes
	stepLines map[fitch.StepIndex]int
	quitLine  int
}

// Replay executes every command of src against a fresh proof. Commands that
// fail are reported and skipped; the rest of the script still runs.
func (e *Engine) Replay(name string, src []byte) *Result {
	r := &replay{
		engine:    e,
		name:      name,
		proof:     fitch.New(),
		nolint:    nolint.Parse(src),
		stepLines: make(map[fitch.StepIndex]int),
	}

	for n, raw := range strings.Split(string(src), "\n") {
		r.line(n+1, strings.TrimRight(raw, "\r"))
	}
	r.checkOpenScopes()

	e.logger.Debug("replayed script",
		zap.String("file", name),
		zap.Int("steps", int(r.proof.NextIndex())-1),
		zap.Int("issues", len(r.issues)),
	)
	return &Result{Proof: r.proof, Issues: r.issues}
}

func (r *replay) line(lineNo int, raw string) {
	text := raw
	if i := strings.Index(text, commentDelimiter); i >= 0 {
		text = text[:i]
	}
	if strings.TrimSpace(text) == "" {
		return
	}
	if r.quitLine > 0 {
		r.report(RuleUnreachable, lineNo, firstColumn(text), raw,
			fmt.Sprintf("command after quit on line %d is never executed", r.quitLine))
		return
	}

	cmd, err := syntax.ParseCommand(text)
	if err != nil {
		var syntaxErr *syntax.SyntaxError
		col := firstColumn(text)
		msg := err.Error()
		if errors.As(err, &syntaxErr) {
			col = columnAt(text, syntaxErr.Offset)
			msg = syntaxErr.Msg
		}
		r.report(RuleSyntaxError, lineNo, col, raw, msg)
		return
	}

	switch {
	case cmd.Kind == syntax.CommandQuit:
		r.quitLine = lineNo
		return
	case !cmd.Mutates():
		return
	case cmd.Kind == syntax.CommandPremise && latePremise(r.proof):
		r.report(RuleLatePremise, lineNo, firstColumn(text), raw,
			"premise introduced after the proof has started")
	}

	idx, err := Execute(r.proof, cmd)
	if err != nil {
		r.report(RuleInvalidStep, lineNo, firstColumn(text), raw, err.Error())
		return
	}
	if idx != 0 {
		r.stepLines[idx] = lineNo
	}
}

func (r *replay) checkOpenScopes() {
	scopes := r.proof.Scopes()
	for _, scope := range scopes[1:] {
		lines := scope.Lines()
		if len(lines) == 0 {
			continue
		}
		first := lines[0]
		lineNo := r.stepLines[first.Index]
		r.report(RuleOpenScope, lineNo, 1, "",
			fmt.Sprintf("box opened by assumption %d (%s) is never discharged", first.Index, first.Step.Prop))
	}
}

func (r *replay) report(rule string, line, col int, command, msg string) {
	severity := r.engine.Severity(rule)
	if severity == tt.SeverityOff || r.nolint.IsNolint(line, rule) {
		return
	}
	r.issues = append(r.issues, tt.Issue{
		Rule:     rule,
		Filename: r.name,
		Line:     line,
		Column:   col,
		Command:  command,
		Message:  msg,
		Severity: severity,
	})
}

// Execute applies a mutating command to proof and returns the index of
// the step it introduced, or 0 when no step was added.
func Execute(proof *fitch.Proof, cmd syntax.Command) (fitch.StepIndex, error) {
	switch cmd.Kind {
	case syntax.CommandPremise:
		return proof.AddPremise(cmd.Prop), nil
	case syntax.CommandAssume:
		return proof.AddAssumption(cmd.Prop), nil
	case syntax.CommandCopy:
		return proof.Copy(cmd.Index)
	case syntax.CommandRule:
		return proof.ApplyRule(cmd.Rule)
	case syntax.CommandDischarge:
		return 0, proof.CloseScope()
	case syntax.CommandUndo:
		if !proof.Undo() {
			return 0, ErrNothingToUndo
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%s does not change the proof", cmd.Kind)
	}
}

// latePremise reports whether a premise added now would follow a step
// that is not a premise.
func latePremise(proof *fitch.Proof) bool {
	if proof.Depth() > 1 {
		return true
	}
	for _, l := range proof.Scopes()[0].Lines() {
		if l.Step.Kind != fitch.StepPremise {
			return true
		}
	}
	return false
}

// columnAt converts a byte offset into a 1-based character column.
func columnAt(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	return utf8.RuneCountInString(text[:offset]) + 1
}

func firstColumn(text string) int {
	return columnAt(text, len(text)-len(strings.TrimLeftFunc(text, unicode.IsSpace)))
}
