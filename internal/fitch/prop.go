package fitch

import "strings"

// Variant identifies the top-level shape of a proposition.
type Variant int

const (
	_ Variant = iota
	VariantBottom
	VariantSymbol
	VariantAnd
	VariantOr
	VariantImply
	VariantProofBox
)

func (v Variant) String() string {
	switch v {
	case VariantBottom:
		return "Bottom"
	case VariantSymbol:
		return "Symbol"
	case VariantAnd:
		return "And"
	case VariantOr:
		return "Or"
	case VariantImply:
		return "Imply"
	case VariantProofBox:
		return "ProofBox"
	default:
		return "?"
	}
}

// Prop is a propositional formula. The set of implementations is closed.
type Prop interface {
	isProp()
	Variant() Variant
	Equal(other Prop) bool
	String() string
}

var (
	_ Prop = Bottom{}
	_ Prop = Symbol{}
	_ Prop = And{}
	_ Prop = Or{}
	_ Prop = Imply{}
	_ Prop = ProofBox{}
)

// Bottom is the absurdity constant ⊥.
type Bottom struct{}

func (Bottom) isProp()          {}
func (Bottom) Variant() Variant { return VariantBottom }
func (b Bottom) String() string { return render(b) }

func (Bottom) Equal(o Prop) bool {
	_, ok := o.(Bottom)
	return ok
}

// Symbol is an atomic propositional variable.
type Symbol struct {
	Name string
}

func (Symbol) isProp()          {}
func (Symbol) Variant() Variant { return VariantSymbol }
func (s Symbol) String() string { return render(s) }

func (s Symbol) Equal(o Prop) bool {
	if other, ok := o.(Symbol); ok {
		return s.Name == other.Name
	}
	return false
}

// And is the conjunction Lhs ∧ Rhs.
type And struct {
	Lhs, Rhs Prop
}

func (And) isProp()          {}
func (And) Variant() Variant { return VariantAnd }
func (a And) String() string { return render(a) }

func (a And) Equal(o Prop) bool {
	if oa, ok := o.(And); ok {
		return equal(a.Lhs, oa.Lhs) && equal(a.Rhs, oa.Rhs)
	}
	return false
}

// Or is the disjunction Lhs ∨ Rhs.
type Or struct {
	Lhs, Rhs Prop
}

func (Or) isProp()          {}
func (Or) Variant() Variant { return VariantOr }
func (o Or) String() string { return render(o) }

func (o Or) Equal(other Prop) bool {
	if oo, ok := other.(Or); ok {
		return equal(o.Lhs, oo.Lhs) && equal(o.Rhs, oo.Rhs)
	}
	return false
}

// Imply is the implication Lhs → Rhs.
type Imply struct {
	Lhs, Rhs Prop
}

func (Imply) isProp()          {}
func (Imply) Variant() Variant { return VariantImply }
func (i Imply) String() string { return render(i) }

func (i Imply) Equal(o Prop) bool {
	if oi, ok := o.(Imply); ok {
		return equal(i.Lhs, oi.Lhs) && equal(i.Rhs, oi.Rhs)
	}
	return false
}

// Negated returns ¬p, which is represented as p → ⊥.
func Negated(p Prop) Prop {
	return Imply{Lhs: p, Rhs: Bottom{}}
}

// IsNegation reports whether p has the shape φ → ⊥ and returns φ.
func IsNegation(p Prop) (Prop, bool) {
	imp, ok := p.(Imply)
	if !ok {
		return nil, false
	}
	if _, ok := imp.Rhs.(Bottom); !ok {
		return nil, false
	}
	return imp.Lhs, true
}

// Equal reports whether two propositions are structurally identical.
// Nil propositions are only equal to each other.
func Equal(a, b Prop) bool {
	return equal(a, b)
}

func equal(a, b Prop) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// Binding strength used when rendering. Higher binds tighter.
const (
	PrecImply = iota + 1
	PrecOr
	PrecAnd
	PrecUnary
)

// Precedence returns how tightly p binds. An operand whose precedence is
// below that of its position needs parentheses.
func Precedence(p Prop) int {
	switch p := p.(type) {
	case Imply:
		if _, ok := IsNegation(p); ok {
			return PrecUnary
		}
		return PrecImply
	case Or:
		return PrecOr
	case And:
		return PrecAnd
	default:
		return PrecUnary
	}
}

func render(p Prop) string {
	var sb strings.Builder
	writeProp(&sb, p)
	return sb.String()
}

func writeProp(sb *strings.Builder, p Prop) {
	switch p := p.(type) {
	case nil:
		sb.WriteString("<nil>")
	case Bottom:
		sb.WriteString("⊥")
	case Symbol:
		sb.WriteString(p.Name)
	case And:
		writeOperand(sb, p.Lhs, PrecAnd)
		sb.WriteString(" ∧ ")
		writeOperand(sb, p.Rhs, PrecAnd+1)
	case Or:
		writeOperand(sb, p.Lhs, PrecOr)
		sb.WriteString(" ∨ ")
		writeOperand(sb, p.Rhs, PrecOr+1)
	case Imply:
		if inner, ok := IsNegation(p); ok {
			sb.WriteString("¬")
			writeOperand(sb, inner, PrecUnary)
			return
		}
		// right-associative: only a left-hand implication needs parentheses
		writeOperand(sb, p.Lhs, PrecImply+1)
		sb.WriteString(" → ")
		writeOperand(sb, p.Rhs, PrecImply)
	case ProofBox:
		sb.WriteString("[")
		writeProp(sb, p.Assumption())
		sb.WriteString(" … ")
		writeProp(sb, p.Derived())
		sb.WriteString("]")
	}
}

// writeOperand parenthesizes p when it binds looser than prec.
func writeOperand(sb *strings.Builder, p Prop, prec int) {
	if p != nil && Precedence(p) < prec {
		sb.WriteString("(")
		writeProp(sb, p)
		sb.WriteString(")")
		return
	}
	writeProp(sb, p)
}
