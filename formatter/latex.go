package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnoswap-labs/fitch/internal/fitch"
)

// LatexPreamble lists the packages a document needs to typeset Latex output.
const LatexPreamble = `\usepackage{amssymb}
\usepackage{logicproof}
`

// ErrOpenScopes is returned when exporting a proof that still has open
// boxes.
var ErrOpenScopes = errors.New("close all proof boxes before exporting")

// Latex renders a finished proof as a logicproof environment.
func Latex(proof *fitch.Proof) (string, error) {
	if proof.Depth() > 1 {
		return "", ErrOpenScopes
	}
	lines := proof.Scopes()[0].Lines()

	var b strings.Builder
	fmt.Fprintf(&b, "\\begin{logicproof}{%d}\n", maxDepth(lines))
	latexBlock(&b, lines, 0)
	b.WriteString("\\end{logicproof}\n")
	return b.String(), nil
}

func latexBlock(b *strings.Builder, lines []fitch.Line, depth int) {
	if depth > 0 {
		b.WriteString("\\begin{subproof}\n")
	}
	for i, l := range lines {
		if box, ok := l.Step.Prop.(fitch.ProofBox); ok {
			latexBlock(b, box.Lines(), depth+1)
			continue
		}
		b.WriteString(latexProp(l.Step.Prop))
		b.WriteString(" & ")
		b.WriteString(latexAnnotation(l.Step))
		if i < len(lines)-1 {
			b.WriteString(" \\\\")
		}
		b.WriteString("\n")
	}
	if depth > 0 {
		b.WriteString("\\end{subproof}\n")
	}
}

func maxDepth(lines []fitch.Line) int {
	depth := 0
	for _, l := range lines {
		if box, ok := l.Step.Prop.(fitch.ProofBox); ok {
			if d := 1 + maxDepth(box.Lines()); d > depth {
				depth = d
			}
		}
	}
	return depth
}

// latexProp renders p in math mode, parenthesized the same way as the
// plain text form.
func latexProp(p fitch.Prop) string {
	var b strings.Builder
	writeLatex(&b, p)
	return b.String()
}

func writeLatex(b *strings.Builder, p fitch.Prop) {
	switch p := p.(type) {
	case fitch.Bottom:
		b.WriteString(`\bot`)
	case fitch.Symbol:
		b.WriteString(latexSymbol(p.Name))
	case fitch.And:
		writeLatexOperand(b, p.Lhs, fitch.PrecAnd)
		b.WriteString(` \land `)
		writeLatexOperand(b, p.Rhs, fitch.PrecAnd+1)
	case fitch.Or:
		writeLatexOperand(b, p.Lhs, fitch.PrecOr)
		b.WriteString(` \lor `)
		writeLatexOperand(b, p.Rhs, fitch.PrecOr+1)
	case fitch.Imply:
		if inner, ok := fitch.IsNegation(p); ok {
			b.WriteString(`\neg `)
			writeLatexOperand(b, inner, fitch.PrecUnary)
			return
		}
		writeLatexOperand(b, p.Lhs, fitch.PrecImply+1)
		b.WriteString(` \to `)
		writeLatexOperand(b, p.Rhs, fitch.PrecImply)
	}
}

func writeLatexOperand(b *strings.Builder, p fitch.Prop, prec int) {
	if fitch.Precedence(p) < prec {
		b.WriteString(`(`)
		writeLatex(b, p)
		b.WriteString(`)`)
		return
	}
	writeLatex(b, p)
}

// latexSymbol typesets single letters as math variables and longer names
// upright.
func latexSymbol(name string) string {
	escaped := strings.ReplaceAll(name, "_", `\_`)
	if len(name) == 1 {
		return escaped
	}
	return `\mathit{` + escaped + `}`
}

func latexAnnotation(s fitch.Step) string {
	switch s.Kind {
	case fitch.StepPremise:
		return "premise"
	case fitch.StepAssumption:
		return "assumption"
	case fitch.StepCopy:
		return "copy " + s.Source.String()
	}

	switch r := s.Rule.(type) {
	case fitch.AndI:
		return fmt.Sprintf(`$\land_{I}$ %d, %d`, r.Lhs, r.Rhs)
	case fitch.AndELhs:
		return fmt.Sprintf(`$\land_{E_{1}}$ %d`, r.Conj)
	case fitch.AndERhs:
		return fmt.Sprintf(`$\land_{E_{2}}$ %d`, r.Conj)
	case fitch.OrILhs:
		return fmt.Sprintf(`$\lor_{I_{1}}$ %d, $%s$`, r.Lhs, latexProp(r.Rhs))
	case fitch.OrIRhs:
		return fmt.Sprintf(`$\lor_{I_{2}}$ $%s$, %d`, latexProp(r.Lhs), r.Rhs)
	case fitch.OrE:
		return fmt.Sprintf(`$\lor_{E}$ %d, %d, %d`, r.Disjunction, r.LhsBox, r.RhsBox)
	case fitch.NegI:
		return fmt.Sprintf(`$\neg_{I}$ %d`, r.Box)
	case fitch.NegE:
		return fmt.Sprintf(`$\neg_{E}$ %d, %d`, r.Prop, r.NegProp)
	case fitch.ImplyI:
		return fmt.Sprintf(`$\to_{I}$ %d`, r.Box)
	case fitch.ImplyE:
		return fmt.Sprintf(`$\to_{E}$ %d, %d`, r.Implication, r.Antecedent)
	case fitch.BottomE:
		return fmt.Sprintf(`$\bot_{E}$ %d, $%s$`, r.Bottom, latexProp(r.Conclusion))
	case fitch.DoubleNegE:
		return fmt.Sprintf(`$\neg\neg_{E}$ %d`, r.Index)
	case fitch.DoubleNegI:
		return fmt.Sprintf(`$\neg\neg_{I}$ %d`, r.Index)
	case fitch.ModusTollens:
		return fmt.Sprintf(`MT %d, %d`, r.Implication, r.NegatedRhs)
	case fitch.ProofByContradiction:
		return fmt.Sprintf(`PBC %d`, r.Box)
	case fitch.LawOfExcludedMiddle:
		return fmt.Sprintf(`LEM $%s$`, latexProp(r.Prop))
	case nil:
		return s.Kind.String()
	default:
		return r.String()
	}
}
