package fitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture builds a proof with the following visible steps:
//
//	1   p
//	2   q
//	3   p ∧ q
//	4   p ∨ q
//	5   p → q
//	6   ¬q
//	7   ⊥
//	8   ¬¬p
//	9   [p … r]
//	11  [q … r]
//	13  [¬p … ⊥]
//	15  [p … ⊥]
//	17  [q … s]
//	19  [¬q … s]
func fixture(t *testing.T) *Proof {
	t.Helper()
	p, q, r, s := sym("p"), sym("q"), sym("r"), sym("s")

	proof := New()
	for _, prem := range []Prop{
		p,
		q,
		And{Lhs: p, Rhs: q},
		Or{Lhs: p, Rhs: q},
		Imply{Lhs: p, Rhs: q},
		Negated(q),
		Bottom{},
		Negated(Negated(p)),
	} {
		proof.AddPremise(prem)
	}

	for _, b := range [][2]Prop{
		{p, r},
		{q, r},
		{Negated(p), Bottom{}},
		{p, Bottom{}},
		{q, s},
		{Negated(q), s},
	} {
		proof.AddAssumption(b[0])
		proof.AddPremise(b[1])
		require.NoError(t, proof.CloseScope())
	}
	require.Equal(t, StepIndex(21), proof.NextIndex())
	return proof
}

func TestFixtureShape(t *testing.T) {
	t.Parallel()
	proof := fixture(t)
	for i, want := range map[StepIndex]string{
		8:  "¬¬p",
		9:  "[p … r]",
		11: "[q … r]",
		13: "[¬p … ⊥]",
		15: "[p … ⊥]",
		17: "[q … s]",
		19: "[¬q … s]",
	} {
		got, err := proof.Prop(i)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, want, got.String(), "step %d", i)
	}
}

func TestRulesDerive(t *testing.T) {
	t.Parallel()
	p, q, r := sym("p"), sym("q"), sym("r")

	tests := []struct {
		rule Rule
		want Prop
	}{
		{AndI{Lhs: 1, Rhs: 2}, And{Lhs: p, Rhs: q}},
		{AndI{Lhs: 2, Rhs: 2}, And{Lhs: q, Rhs: q}},
		{AndELhs{Conj: 3}, p},
		{AndERhs{Conj: 3}, q},
		{OrILhs{Lhs: 1, Rhs: r}, Or{Lhs: p, Rhs: r}},
		{OrIRhs{Lhs: r, Rhs: 2}, Or{Lhs: r, Rhs: q}},
		{OrE{Disjunction: 4, LhsBox: 9, RhsBox: 11}, r},
		{NegI{Box: 15}, Negated(p)},
		{NegE{Prop: 2, NegProp: 6}, Bottom{}},
		{ImplyI{Box: 9}, Imply{Lhs: p, Rhs: r}},
		{ImplyE{Implication: 5, Antecedent: 1}, q},
		{BottomE{Bottom: 7, Conclusion: r}, r},
		{DoubleNegE{Index: 8}, p},
		{ModusTollens{Implication: 5, NegatedRhs: 6}, Negated(p)},
		{DoubleNegI{Index: 2}, Negated(Negated(q))},
		{ProofByContradiction{Box: 13}, p},
		{LawOfExcludedMiddle{Prop: r}, Or{Lhs: r, Rhs: Negated(r)}},
	}

	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			proof := fixture(t)
			i, err := proof.ApplyRule(tt.rule)
			require.NoError(t, err)
			assert.Equal(t, StepIndex(21), i)

			step, err := proof.Step(i)
			require.NoError(t, err)
			assert.Equal(t, StepRule, step.Kind)
			assert.True(t, Equal(tt.want, step.Prop), "got %s, want %s", step.Prop, tt.want)
			assert.Equal(t, tt.rule.String(), step.Annotation())
		})
	}
}

func TestRulesReject(t *testing.T) {
	t.Parallel()
	p, q, r := sym("p"), sym("q"), sym("r")

	variant := func(v Variant) func(*testing.T, error) {
		return func(t *testing.T, err error) {
			var target *ExpectedPropVariantError
			require.ErrorAs(t, err, &target)
			assert.Equal(t, v, target.Expected)
		}
	}
	mismatch := func(expected, got Prop) func(*testing.T, error) {
		return func(t *testing.T, err error) {
			var target *PropMismatchError
			require.ErrorAs(t, err, &target)
			assert.True(t, Equal(expected, target.Expected), "expected %s", target.Expected)
			assert.True(t, Equal(got, target.Got), "got %s", target.Got)
		}
	}
	invalid := func(i StepIndex) func(*testing.T, error) {
		return func(t *testing.T, err error) {
			var target *InvalidStepIndexError
			require.ErrorAs(t, err, &target)
			assert.Equal(t, i, target.Index)
		}
	}

	tests := []struct {
		name  string
		rule  Rule
		check func(*testing.T, error)
	}{
		{"and intro unknown lhs", AndI{Lhs: 99, Rhs: 1}, invalid(99)},
		{"and intro unknown rhs", AndI{Lhs: 1, Rhs: 98}, invalid(98)},
		{"and elim on symbol", AndELhs{Conj: 1}, variant(VariantAnd)},
		{"and elim rhs on disjunction", AndERhs{Conj: 4}, variant(VariantAnd)},
		{"or intro unknown", OrILhs{Lhs: 0, Rhs: r}, invalid(0)},
		{"or intro rhs unknown", OrIRhs{Lhs: r, Rhs: 50}, invalid(50)},
		{"or elim on conjunction", OrE{Disjunction: 3, LhsBox: 9, RhsBox: 11}, variant(VariantOr)},
		{"or elim lhs not a box", OrE{Disjunction: 4, LhsBox: 1, RhsBox: 11}, variant(VariantProofBox)},
		{"or elim rhs not a box", OrE{Disjunction: 4, LhsBox: 9, RhsBox: 2}, variant(VariantProofBox)},
		{"or elim lhs assumption", OrE{Disjunction: 4, LhsBox: 11, RhsBox: 11}, mismatch(p, q)},
		{"or elim rhs assumption", OrE{Disjunction: 4, LhsBox: 9, RhsBox: 9}, mismatch(q, p)},
		{"or elim conclusions differ", OrE{Disjunction: 4, LhsBox: 9, RhsBox: 17}, mismatch(r, sym("s"))},
		{"or elim unknown box", OrE{Disjunction: 4, LhsBox: 9, RhsBox: 10}, invalid(10)},
		{"neg intro not a box", NegI{Box: 6}, variant(VariantProofBox)},
		{"neg intro without bottom", NegI{Box: 9}, mismatch(Bottom{}, r)},
		{"neg elim not a negation", NegE{Prop: 1, NegProp: 5}, mismatch(Bottom{}, q)},
		{"neg elim on symbol", NegE{Prop: 1, NegProp: 2}, variant(VariantImply)},
		{"neg elim wrong operand", NegE{Prop: 1, NegProp: 6}, mismatch(q, p)},
		{"imply intro not a box", ImplyI{Box: 5}, variant(VariantProofBox)},
		{"imply elim not an implication", ImplyE{Implication: 3, Antecedent: 1}, variant(VariantImply)},
		{"imply elim wrong antecedent", ImplyE{Implication: 5, Antecedent: 2}, mismatch(p, q)},
		{"bottom elim not bottom", BottomE{Bottom: 1, Conclusion: r}, mismatch(Bottom{}, p)},
		{"double neg elim on symbol", DoubleNegE{Index: 1}, variant(VariantImply)},
		{"double neg elim single negation", DoubleNegE{Index: 6}, variant(VariantImply)},
		{"double neg elim on implication", DoubleNegE{Index: 5}, mismatch(Bottom{}, q)},
		{"modus tollens not an implication", ModusTollens{Implication: 1, NegatedRhs: 6}, variant(VariantImply)},
		{"modus tollens wrong negation", ModusTollens{Implication: 5, NegatedRhs: 8}, mismatch(Negated(q), Negated(Negated(p)))},
		{"double neg intro unknown", DoubleNegI{Index: 21}, invalid(21)},
		{"pbc not a box", ProofByContradiction{Box: 7}, variant(VariantProofBox)},
		{"pbc assumption not negated", ProofByContradiction{Box: 15}, variant(VariantImply)},
		{"pbc symbol assumption", ProofByContradiction{Box: 9}, variant(VariantImply)},
		{"pbc without bottom", ProofByContradiction{Box: 19}, mismatch(Bottom{}, sym("s"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proof := fixture(t)
			before := snapshot(proof)
			_, err := proof.ApplyRule(tt.rule)
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, before, snapshot(proof))
		})
	}
}

func TestProofByContradictionRequiresBottom(t *testing.T) {
	t.Parallel()
	proof := New()
	proof.AddAssumption(Negated(sym("p")))
	proof.AddPremise(sym("q"))
	require.NoError(t, proof.CloseScope())

	_, err := proof.ApplyRule(ProofByContradiction{Box: 1})
	var target *PropMismatchError
	require.ErrorAs(t, err, &target)
	assert.True(t, Equal(Bottom{}, target.Expected))
	assert.True(t, Equal(sym("q"), target.Got))
}

func TestRulesCannotUseOpenBox(t *testing.T) {
	t.Parallel()
	proof := New()
	a := proof.AddAssumption(sym("p"))

	// while open, the assumption is a plain step
	_, err := proof.ApplyRule(ImplyI{Box: a})
	var target *ExpectedPropVariantError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, VariantProofBox, target.Expected)
	assert.True(t, Equal(sym("p"), target.Got))
}

func TestRuleString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		rule Rule
		want string
		refs []StepIndex
	}{
		{AndI{Lhs: 1, Rhs: 2}, "∧i 1, 2", []StepIndex{1, 2}},
		{OrILhs{Lhs: 3, Rhs: sym("q")}, "∨i_lhs 3, q", []StepIndex{3}},
		{OrE{Disjunction: 1, LhsBox: 2, RhsBox: 5}, "∨e 1, 2, 5", []StepIndex{1, 2, 5}},
		{BottomE{Bottom: 4, Conclusion: Negated(sym("p"))}, "⊥e 4, ¬p", []StepIndex{4}},
		{ModusTollens{Implication: 1, NegatedRhs: 2}, "MT 1, 2", []StepIndex{1, 2}},
		{LawOfExcludedMiddle{Prop: sym("p")}, "LEM p", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.rule.String())
		assert.Equal(t, tt.refs, tt.rule.Refs())
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	err := expectVariant(VariantAnd, sym("p"))
	assert.Equal(t, `expected And but got "p" (Symbol)`, err.Error())

	err = checkEq(sym("p"), Negated(sym("q")))
	assert.Equal(t, `expected "p" but got "¬q"`, err.Error())

	assert.NoError(t, checkEq(sym("p"), sym("p")))
}
