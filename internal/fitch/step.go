package fitch

import (
	"reflect"
	"strconv"
)

// StepIndex identifies a step. Indices start at 1 and are unique across
// all scopes of a proof.
type StepIndex uint

func (i StepIndex) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

// StepKind describes how a step was justified.
type StepKind int

const (
	_ StepKind = iota
	// StepPremise is a proposition taken as given.
	StepPremise
	// StepAssumption opens a scope. Discharged boxes keep this kind.
	StepAssumption
	// StepCopy repeats a visible step.
	StepCopy
	// StepRule is the conclusion of an inference rule.
	StepRule
)

func (k StepKind) String() string {
	switch k {
	case StepPremise:
		return "premise"
	case StepAssumption:
		return "assumption"
	case StepCopy:
		return "copy"
	case StepRule:
		return "rule"
	default:
		return "?"
	}
}

// Step is one line of a proof. Source is only set for copies and Rule only
// for rule conclusions.
type Step struct {
	Prop   Prop
	Kind   StepKind
	Source StepIndex
	Rule   Rule
}

// PremiseStep, AssumptionStep, CopyStep and RuleStep build steps of the
// respective kind.
func PremiseStep(p Prop) Step    { return Step{Prop: p, Kind: StepPremise} }
func AssumptionStep(p Prop) Step { return Step{Prop: p, Kind: StepAssumption} }

func CopyStep(p Prop, source StepIndex) Step {
	return Step{Prop: p, Kind: StepCopy, Source: source}
}

func RuleStep(p Prop, r Rule) Step {
	return Step{Prop: p, Kind: StepRule, Rule: r}
}

// Annotation returns the justification column of the step, for example
// "premise", "copy 3" or "→e 1, 2".
func (s Step) Annotation() string {
	switch s.Kind {
	case StepCopy:
		return "copy " + s.Source.String()
	case StepRule:
		if s.Rule == nil {
			return "rule"
		}
		return s.Rule.String()
	default:
		return s.Kind.String()
	}
}

// Cites returns the indices the step depends on.
func (s Step) Cites() []StepIndex {
	switch s.Kind {
	case StepCopy:
		return []StepIndex{s.Source}
	case StepRule:
		if s.Rule != nil {
			return s.Rule.Refs()
		}
	}
	return nil
}

// Equal reports whether two steps have the same justification and
// structurally equal propositions.
func (s Step) Equal(o Step) bool {
	if s.Kind != o.Kind || s.Source != o.Source || !equal(s.Prop, o.Prop) {
		return false
	}
	// rules are plain values (indices and propositions)
	return reflect.DeepEqual(s.Rule, o.Rule)
}

// Line pairs a step with its index.
type Line struct {
	Index StepIndex
	Step  Step
}

// ProofBox is the proposition a discharged scope is folded into. It keeps
// the lines of the scope in insertion order: the first line is the
// assumption, the last line is the derived proposition.
type ProofBox struct {
	lines []Line
}

// NewProofBox builds a box from the lines of a closed scope.
func NewProofBox(lines []Line) ProofBox {
	return ProofBox{lines: append([]Line(nil), lines...)}
}

func (ProofBox) isProp()          {}
func (ProofBox) Variant() Variant { return VariantProofBox }
func (b ProofBox) String() string { return render(b) }

// Lines returns a copy of the boxed lines in insertion order.
func (b ProofBox) Lines() []Line {
	return append([]Line(nil), b.lines...)
}

// Len returns the number of lines in the box.
func (b ProofBox) Len() int { return len(b.lines) }

// Start returns the index of the assumption, which is also the index the
// box is stored under in the parent scope.
func (b ProofBox) Start() StepIndex {
	if len(b.lines) == 0 {
		return 0
	}
	return b.lines[0].Index
}

// Assumption returns the proposition that opened the box, or nil for an
// empty box.
func (b ProofBox) Assumption() Prop {
	if len(b.lines) == 0 {
		return nil
	}
	return b.lines[0].Step.Prop
}

// Derived returns the last proposition of the box, or nil for an empty box.
func (b ProofBox) Derived() Prop {
	if len(b.lines) == 0 {
		return nil
	}
	return b.lines[len(b.lines)-1].Step.Prop
}

// Contains reports whether i was allocated inside the box, at any depth.
func (b ProofBox) Contains(i StepIndex) bool {
	for _, l := range b.lines {
		if l.Index == i {
			return true
		}
		if inner, ok := l.Step.Prop.(ProofBox); ok && inner.Contains(i) {
			return true
		}
	}
	return false
}

func (b ProofBox) Equal(o Prop) bool {
	ob, ok := o.(ProofBox)
	if !ok || len(b.lines) != len(ob.lines) {
		return false
	}
	for i := range b.lines {
		if b.lines[i].Index != ob.lines[i].Index || !b.lines[i].Step.Equal(ob.lines[i].Step) {
			return false
		}
	}
	return true
}
