package syntax

import (
	"testing"

	"github.com/gnoswap-labs/fitch/internal/fitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	t.Parallel()
	tokens, err := NewLexer("(p1 -> ¬q) ∧ bottom, 12", 0).Tokenize()
	require.NoError(t, err)

	want := []struct {
		typ    TokenType
		value  string
		offset int
	}{
		{TokenLParen, "(", 0},
		{TokenIdent, "p1", 1},
		{TokenImply, "->", 4},
		{TokenNot, "¬", 7},
		{TokenIdent, "q", 9},
		{TokenRParen, ")", 10},
		{TokenAnd, "∧", 12},
		{TokenBottom, "bottom", 16},
		{TokenComma, ",", 22},
		{TokenInt, "12", 24},
		{TokenEOF, "", 26},
	}
	require.Len(t, tokens, len(want))
	for i, w := range want {
		assert.Equal(t, w.typ, tokens[i].Type, "token %d", i)
		assert.Equal(t, w.value, tokens[i].Value, "token %d", i)
		assert.Equal(t, w.offset, tokens[i].Offset, "token %d", i)
	}
}

func TestLexerBaseOffset(t *testing.T) {
	t.Parallel()
	_, err := NewLexer("p $ q", 10).Tokenize()
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 12, syntaxErr.Offset)
	assert.Contains(t, syntaxErr.Msg, "'$'")
}

func TestParseProp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  string
	}{
		{"p", "p"},
		{"bottom", "⊥"},
		{"⊥", "⊥"},
		{"p & q", "p ∧ q"},
		{"p ∧ q ^ r * s", "p ∧ q ∧ r ∧ s"},
		{"p | q + r", "p ∨ q ∨ r"},
		{"p v q", "p ∨ q"},
		{"v v w", "v ∨ w"},
		{"p ∧ q ∨ r", "p ∧ q ∨ r"},
		{"p ∨ q ∧ r", "p ∨ q ∧ r"},
		{"(p ∨ q) ∧ r", "(p ∨ q) ∧ r"},
		{"p -> q -> r", "p → q → r"},
		{"(p → q) ⇒ r", "(p → q) → r"},
		{"p ∨ q → r", "p ∨ q → r"},
		{"-p", "¬p"},
		{"~~p", "¬¬p"},
		{"--p", "¬¬p"},
		{"¬(p ∧ q)", "¬(p ∧ q)"},
		{"¬p ∧ q", "¬p ∧ q"},
		{"p -> bottom", "¬p"},
		{"  ( ( p ) )  ", "p"},
		{"foo_bar ∧ x1", "foo_bar ∧ x1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProp(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParsePropStructure(t *testing.T) {
	t.Parallel()
	p, q, r := fitch.Symbol{Name: "p"}, fitch.Symbol{Name: "q"}, fitch.Symbol{Name: "r"}

	got, err := ParseProp("p -> q -> r")
	require.NoError(t, err)
	assert.True(t, fitch.Equal(fitch.Imply{Lhs: p, Rhs: fitch.Imply{Lhs: q, Rhs: r}}, got))

	got, err = ParseProp("p & q & r")
	require.NoError(t, err)
	assert.True(t, fitch.Equal(fitch.And{Lhs: fitch.And{Lhs: p, Rhs: q}, Rhs: r}, got))

	got, err = ParseProp("¬p")
	require.NoError(t, err)
	assert.True(t, fitch.Equal(fitch.Imply{Lhs: p, Rhs: fitch.Bottom{}}, got))
}

func TestParsePropErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input  string
		offset int
		msg    string
	}{
		{"", 0, "expected formula but got end of input"},
		{"p ∧", 5, "expected formula but got end of input"},
		{"(p ∨ q", 8, "expected ')' but got end of input"},
		{"p q", 2, `unexpected "q"`},
		{"p )", 2, "unexpected ')'"},
		{"1", 0, `expected formula but got "1"`},
		{"p # q", 2, "unexpected character '#'"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseProp(tt.input)
			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.offset, syntaxErr.Offset)
			assert.Contains(t, syntaxErr.Msg, tt.msg)
		})
	}
}

func TestParseRule(t *testing.T) {
	t.Parallel()
	q := fitch.Symbol{Name: "q"}
	tests := []struct {
		input string
		want  fitch.Rule
	}{
		{"and_i 1 2", fitch.AndI{Lhs: 1, Rhs: 2}},
		{"∧i 1, 2", fitch.AndI{Lhs: 1, Rhs: 2}},
		{"&e_lhs 3", fitch.AndELhs{Conj: 3}},
		{"^e_rhs 3", fitch.AndERhs{Conj: 3}},
		{"or_i_lhs 1 q", fitch.OrILhs{Lhs: 1, Rhs: q}},
		{"vi_rhs q, 4", fitch.OrIRhs{Lhs: q, Rhs: 4}},
		{"|e 1 2 5", fitch.OrE{Disjunction: 1, LhsBox: 2, RhsBox: 5}},
		{"neg_i 2", fitch.NegI{Box: 2}},
		{"-e 1 2", fitch.NegE{Prop: 1, NegProp: 2}},
		{"¬e 1,2", fitch.NegE{Prop: 1, NegProp: 2}},
		{"imply_i 2", fitch.ImplyI{Box: 2}},
		{"->e 1 2", fitch.ImplyE{Implication: 1, Antecedent: 2}},
		{"→e 1 2", fitch.ImplyE{Implication: 1, Antecedent: 2}},
		{"bottom_e 3 q", fitch.BottomE{Bottom: 3, Conclusion: q}},
		{"⊥e 3, q", fitch.BottomE{Bottom: 3, Conclusion: q}},
		{"neg_neg_e 4", fitch.DoubleNegE{Index: 4}},
		{"--i 4", fitch.DoubleNegI{Index: 4}},
		{"¬¬i 4", fitch.DoubleNegI{Index: 4}},
		{"mt 1 2", fitch.ModusTollens{Implication: 1, NegatedRhs: 2}},
		{"modus_tollens 1 2", fitch.ModusTollens{Implication: 1, NegatedRhs: 2}},
		{"pbc 2", fitch.ProofByContradiction{Box: 2}},
		{"proof_by_contradiction 2", fitch.ProofByContradiction{Box: 2}},
		{"lem q", fitch.LawOfExcludedMiddle{Prop: q}},
		{"LEM q", fitch.LawOfExcludedMiddle{Prop: q}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRule(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRuleErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input  string
		offset int
		msg    string
	}{
		{"", 0, "expected rule name"},
		{"frobnicate 1", 0, `unknown rule "frobnicate"`},
		{"and_i 1", 7, "expected step index but got end of input"},
		{"and_i 1 2 3", 10, `unexpected "3"`},
		{"->e p 2", 4, `expected step index but got "p"`},
		{"lem", 3, "expected formula"},
		{"neg_i 99999999999", 6, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseRule(tt.input)
			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.offset, syntaxErr.Offset)
			assert.Contains(t, syntaxErr.Msg, tt.msg)
		})
	}
}

func TestRuleSpellingsMatchSymbols(t *testing.T) {
	t.Parallel()
	rules := Rules()
	require.Len(t, rules, 16)
	for _, info := range rules {
		// the symbol printed in proofs can be typed back
		got, ok := LookupRule(info.Symbol)
		assert.True(t, ok, info.Symbol)
		assert.Equal(t, info.Name, got.Name)
	}
}
