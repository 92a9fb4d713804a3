package fitch

import "strings"

// Rule is an application of an inference rule: the rule itself plus the
// steps (and for some rules, propositions) it cites.
//
// A type is a Rule only if it knows how to derive its conclusion, so every
// rule added here must come with its derivation in evaluator.go.
type Rule interface {
	// Name returns the mnemonic of the rule, e.g. "∧i".
	Name() string
	// Refs returns the cited step indices in argument order.
	Refs() []StepIndex
	String() string

	derive(p *Proof) (Prop, error)
}

var (
	_ Rule = AndI{}
	_ Rule = AndELhs{}
	_ Rule = AndERhs{}
	_ Rule = OrILhs{}
	_ Rule = OrIRhs{}
	_ Rule = OrE{}
	_ Rule = NegI{}
	_ Rule = NegE{}
	_ Rule = ImplyI{}
	_ Rule = ImplyE{}
	_ Rule = BottomE{}
	_ Rule = DoubleNegE{}
	_ Rule = ModusTollens{}
	_ Rule = DoubleNegI{}
	_ Rule = ProofByContradiction{}
	_ Rule = LawOfExcludedMiddle{}
)

// AndI is conjunction introduction.
//
//	φ    ψ
//	-------
//	 φ ∧ ψ
type AndI struct {
	Lhs, Rhs StepIndex
}

func (AndI) Name() string        { return "∧i" }
func (r AndI) Refs() []StepIndex { return []StepIndex{r.Lhs, r.Rhs} }
func (r AndI) String() string    { return format(r, r.Lhs, r.Rhs) }

// AndELhs is conjunction elimination keeping the left conjunct.
//
//	φ ∧ ψ
//	-----
//	  φ
type AndELhs struct {
	Conj StepIndex
}

func (AndELhs) Name() string        { return "∧e_lhs" }
func (r AndELhs) Refs() []StepIndex { return []StepIndex{r.Conj} }
func (r AndELhs) String() string    { return format(r, r.Conj) }

// AndERhs is conjunction elimination keeping the right conjunct.
//
//	φ ∧ ψ
//	-----
//	  ψ
type AndERhs struct {
	Conj StepIndex
}

func (AndERhs) Name() string        { return "∧e_rhs" }
func (r AndERhs) Refs() []StepIndex { return []StepIndex{r.Conj} }
func (r AndERhs) String() string    { return format(r, r.Conj) }

// OrILhs is disjunction introduction with the cited step on the left.
//
//	  φ
//	-----
//	φ ∨ ψ
type OrILhs struct {
	Lhs StepIndex
	Rhs Prop
}

func (OrILhs) Name() string        { return "∨i_lhs" }
func (r OrILhs) Refs() []StepIndex { return []StepIndex{r.Lhs} }
func (r OrILhs) String() string    { return format(r, r.Lhs, r.Rhs) }

// OrIRhs is disjunction introduction with the cited step on the right.
//
//	  ψ
//	-----
//	φ ∨ ψ
type OrIRhs struct {
	Lhs Prop
	Rhs StepIndex
}

func (OrIRhs) Name() string        { return "∨i_rhs" }
func (r OrIRhs) Refs() []StepIndex { return []StepIndex{r.Rhs} }
func (r OrIRhs) String() string    { return format(r, r.Lhs, r.Rhs) }

// OrE is disjunction elimination (proof by cases).
//
//	φ ∨ ψ   [φ … χ]   [ψ … χ]
//	-------------------------
//	           χ
type OrE struct {
	Disjunction StepIndex
	LhsBox      StepIndex
	RhsBox      StepIndex
}

func (OrE) Name() string        { return "∨e" }
func (r OrE) Refs() []StepIndex { return []StepIndex{r.Disjunction, r.LhsBox, r.RhsBox} }
func (r OrE) String() string    { return format(r, r.Disjunction, r.LhsBox, r.RhsBox) }

// NegI is negation introduction.
//
//	[φ … ⊥]
//	-------
//	  ¬φ
type NegI struct {
	Box StepIndex
}

func (NegI) Name() string        { return "¬i" }
func (r NegI) Refs() []StepIndex { return []StepIndex{r.Box} }
func (r NegI) String() string    { return format(r, r.Box) }

// NegE is negation elimination.
//
//	φ   ¬φ
//	------
//	  ⊥
type NegE struct {
	Prop    StepIndex
	NegProp StepIndex
}

func (NegE) Name() string        { return "¬e" }
func (r NegE) Refs() []StepIndex { return []StepIndex{r.Prop, r.NegProp} }
func (r NegE) String() string    { return format(r, r.Prop, r.NegProp) }

// ImplyI is implication introduction.
//
//	[φ … ψ]
//	-------
//	 φ → ψ
type ImplyI struct {
	Box StepIndex
}

func (ImplyI) Name() string        { return "→i" }
func (r ImplyI) Refs() []StepIndex { return []StepIndex{r.Box} }
func (r ImplyI) String() string    { return format(r, r.Box) }

// ImplyE is implication elimination (modus ponens).
//
//	φ → ψ   φ
//	---------
//	    ψ
type ImplyE struct {
	Implication StepIndex
	Antecedent  StepIndex
}

func (ImplyE) Name() string        { return "→e" }
func (r ImplyE) Refs() []StepIndex { return []StepIndex{r.Implication, r.Antecedent} }
func (r ImplyE) String() string    { return format(r, r.Implication, r.Antecedent) }

// BottomE is absurdity elimination: anything follows from ⊥.
//
//	⊥
//	-
//	φ
type BottomE struct {
	Bottom     StepIndex
	Conclusion Prop
}

func (BottomE) Name() string        { return "⊥e" }
func (r BottomE) Refs() []StepIndex { return []StepIndex{r.Bottom} }
func (r BottomE) String() string    { return format(r, r.Bottom, r.Conclusion) }

// DoubleNegE is double negation elimination.
//
//	¬¬φ
//	---
//	 φ
type DoubleNegE struct {
	Index StepIndex
}

func (DoubleNegE) Name() string        { return "¬¬e" }
func (r DoubleNegE) Refs() []StepIndex { return []StepIndex{r.Index} }
func (r DoubleNegE) String() string    { return format(r, r.Index) }

// ModusTollens derives the negated antecedent.
//
//	φ → ψ   ¬ψ
//	----------
//	    ¬φ
type ModusTollens struct {
	Implication StepIndex
	NegatedRhs  StepIndex
}

func (ModusTollens) Name() string        { return "MT" }
func (r ModusTollens) Refs() []StepIndex { return []StepIndex{r.Implication, r.NegatedRhs} }
func (r ModusTollens) String() string    { return format(r, r.Implication, r.NegatedRhs) }

// DoubleNegI is double negation introduction.
//
//	 φ
//	---
//	¬¬φ
type DoubleNegI struct {
	Index StepIndex
}

func (DoubleNegI) Name() string        { return "¬¬i" }
func (r DoubleNegI) Refs() []StepIndex { return []StepIndex{r.Index} }
func (r DoubleNegI) String() string    { return format(r, r.Index) }

// ProofByContradiction derives φ from a box assuming ¬φ and ending in ⊥.
//
//	[¬φ … ⊥]
//	--------
//	   φ
type ProofByContradiction struct {
	Box StepIndex
}

func (ProofByContradiction) Name() string        { return "PBC" }
func (r ProofByContradiction) Refs() []StepIndex { return []StepIndex{r.Box} }
func (r ProofByContradiction) String() string    { return format(r, r.Box) }

// LawOfExcludedMiddle introduces φ ∨ ¬φ without premises.
//
//	------
//	φ ∨ ¬φ
type LawOfExcludedMiddle struct {
	Prop Prop
}

func (LawOfExcludedMiddle) Name() string      { return "LEM" }
func (LawOfExcludedMiddle) Refs() []StepIndex { return nil }
func (r LawOfExcludedMiddle) String() string  { return format(r, r.Prop) }

// format renders a rule as its name followed by its arguments, which are
// step indices or propositions.
func format(r Rule, args ...any) string {
	var sb strings.Builder
	sb.WriteString(r.Name())
	for i, arg := range args {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}
		switch a := arg.(type) {
		case StepIndex:
			sb.WriteString(a.String())
		case Prop:
			sb.WriteString(render(a))
		}
	}
	return sb.String()
}
