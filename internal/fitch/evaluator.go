package fitch

// Each rule derives its conclusion from the visible steps of a proof. All
// referenced steps are resolved before any shape is inspected, and nothing
// here mutates the proof.

func (r AndI) derive(p *Proof) (Prop, error) {
	lhs, err := p.Prop(r.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := p.Prop(r.Rhs)
	if err != nil {
		return nil, err
	}
	return And{Lhs: lhs, Rhs: rhs}, nil
}

func (r AndELhs) derive(p *Proof) (Prop, error) {
	conj, err := p.Prop(r.Conj)
	if err != nil {
		return nil, err
	}
	and, ok := conj.(And)
	if !ok {
		return nil, expectVariant(VariantAnd, conj)
	}
	return and.Lhs, nil
}

func (r AndERhs) derive(p *Proof) (Prop, error) {
	conj, err := p.Prop(r.Conj)
	if err != nil {
		return nil, err
	}
	and, ok := conj.(And)
	if !ok {
		return nil, expectVariant(VariantAnd, conj)
	}
	return and.Rhs, nil
}

func (r OrILhs) derive(p *Proof) (Prop, error) {
	lhs, err := p.Prop(r.Lhs)
	if err != nil {
		return nil, err
	}
	return Or{Lhs: lhs, Rhs: r.Rhs}, nil
}

func (r OrIRhs) derive(p *Proof) (Prop, error) {
	rhs, err := p.Prop(r.Rhs)
	if err != nil {
		return nil, err
	}
	return Or{Lhs: r.Lhs, Rhs: rhs}, nil
}

func (r OrE) derive(p *Proof) (Prop, error) {
	disj, err := p.Prop(r.Disjunction)
	if err != nil {
		return nil, err
	}
	lhsProp, err := p.Prop(r.LhsBox)
	if err != nil {
		return nil, err
	}
	rhsProp, err := p.Prop(r.RhsBox)
	if err != nil {
		return nil, err
	}

	or, ok := disj.(Or)
	if !ok {
		return nil, expectVariant(VariantOr, disj)
	}
	lhsBox, ok := lhsProp.(ProofBox)
	if !ok {
		return nil, expectVariant(VariantProofBox, lhsProp)
	}
	rhsBox, ok := rhsProp.(ProofBox)
	if !ok {
		return nil, expectVariant(VariantProofBox, rhsProp)
	}

	if err := checkEq(or.Lhs, lhsBox.Assumption()); err != nil {
		return nil, err
	}
	if err := checkEq(or.Rhs, rhsBox.Assumption()); err != nil {
		return nil, err
	}
	if err := checkEq(lhsBox.Derived(), rhsBox.Derived()); err != nil {
		return nil, err
	}
	return lhsBox.Derived(), nil
}

func (r NegI) derive(p *Proof) (Prop, error) {
	box, err := p.box(r.Box)
	if err != nil {
		return nil, err
	}
	if err := checkEq(Bottom{}, box.Derived()); err != nil {
		return nil, err
	}
	return Negated(box.Assumption()), nil
}

func (r NegE) derive(p *Proof) (Prop, error) {
	prop, err := p.Prop(r.Prop)
	if err != nil {
		return nil, err
	}
	negProp, err := p.Prop(r.NegProp)
	if err != nil {
		return nil, err
	}

	// ¬φ is φ → ⊥
	imp, ok := negProp.(Imply)
	if !ok {
		return nil, expectVariant(VariantImply, negProp)
	}
	if err := checkEq(Bottom{}, imp.Rhs); err != nil {
		return nil, err
	}
	if err := checkEq(imp.Lhs, prop); err != nil {
		return nil, err
	}
	return Bottom{}, nil
}

func (r ImplyI) derive(p *Proof) (Prop, error) {
	box, err := p.box(r.Box)
	if err != nil {
		return nil, err
	}
	return Imply{Lhs: box.Assumption(), Rhs: box.Derived()}, nil
}

func (r ImplyE) derive(p *Proof) (Prop, error) {
	impProp, err := p.Prop(r.Implication)
	if err != nil {
		return nil, err
	}
	antecedent, err := p.Prop(r.Antecedent)
	if err != nil {
		return nil, err
	}

	imp, ok := impProp.(Imply)
	if !ok {
		return nil, expectVariant(VariantImply, impProp)
	}
	if err := checkEq(imp.Lhs, antecedent); err != nil {
		return nil, err
	}
	return imp.Rhs, nil
}

func (r BottomE) derive(p *Proof) (Prop, error) {
	bottom, err := p.Prop(r.Bottom)
	if err != nil {
		return nil, err
	}
	if err := checkEq(Bottom{}, bottom); err != nil {
		return nil, err
	}
	return r.Conclusion, nil
}

func (r DoubleNegE) derive(p *Proof) (Prop, error) {
	prop, err := p.Prop(r.Index)
	if err != nil {
		return nil, err
	}

	// ¬¬φ is (φ → ⊥) → ⊥
	outer, ok := prop.(Imply)
	if !ok {
		return nil, expectVariant(VariantImply, prop)
	}
	if err := checkEq(Bottom{}, outer.Rhs); err != nil {
		return nil, err
	}
	inner, ok := outer.Lhs.(Imply)
	if !ok {
		return nil, expectVariant(VariantImply, outer.Lhs)
	}
	if err := checkEq(Bottom{}, inner.Rhs); err != nil {
		return nil, err
	}
	return inner.Lhs, nil
}

func (r ModusTollens) derive(p *Proof) (Prop, error) {
	impProp, err := p.Prop(r.Implication)
	if err != nil {
		return nil, err
	}
	negRhs, err := p.Prop(r.NegatedRhs)
	if err != nil {
		return nil, err
	}

	imp, ok := impProp.(Imply)
	if !ok {
		return nil, expectVariant(VariantImply, impProp)
	}
	if err := checkEq(Negated(imp.Rhs), negRhs); err != nil {
		return nil, err
	}
	return Negated(imp.Lhs), nil
}

func (r DoubleNegI) derive(p *Proof) (Prop, error) {
	prop, err := p.Prop(r.Index)
	if err != nil {
		return nil, err
	}
	return Negated(Negated(prop)), nil
}

func (r ProofByContradiction) derive(p *Proof) (Prop, error) {
	box, err := p.box(r.Box)
	if err != nil {
		return nil, err
	}

	// the assumption must be a negation φ → ⊥
	assumption, ok := box.Assumption().(Imply)
	if !ok {
		return nil, expectVariant(VariantImply, box.Assumption())
	}
	if err := checkEq(Bottom{}, assumption.Rhs); err != nil {
		return nil, err
	}
	if err := checkEq(Bottom{}, box.Derived()); err != nil {
		return nil, err
	}
	return assumption.Lhs, nil
}

func (r LawOfExcludedMiddle) derive(*Proof) (Prop, error) {
	return Or{Lhs: r.Prop, Rhs: Negated(r.Prop)}, nil
}

// box resolves i and requires it to be a discharged proof box.
func (p *Proof) box(i StepIndex) (ProofBox, error) {
	prop, err := p.Prop(i)
	if err != nil {
		return ProofBox{}, err
	}
	box, ok := prop.(ProofBox)
	if !ok {
		return ProofBox{}, expectVariant(VariantProofBox, prop)
	}
	return box, nil
}
