package fitch

// Proof is a proof under construction: a stack of scopes (index 0 is the
// global scope) and the allocator for step indices.
type Proof struct {
	scopes []*Scope
	next   StepIndex
}

// New creates an empty proof with only the global scope.
func New() *Proof {
	return &Proof{
		scopes: []*Scope{newScope()},
		next:   1,
	}
}

// AddPremise adds p to the current scope. Premises are accepted at any
// point of the proof, including inside open boxes.
func (p *Proof) AddPremise(prop Prop) StepIndex {
	return p.add(PremiseStep(prop))
}

// AddAssumption opens a new scope whose first step is the assumption. The
// returned index is also the index of the box once the scope is closed.
func (p *Proof) AddAssumption(prop Prop) StepIndex {
	p.scopes = append(p.scopes, newScope())
	return p.add(AssumptionStep(prop))
}

// Copy repeats a visible step in the current scope.
func (p *Proof) Copy(i StepIndex) (StepIndex, error) {
	prop, err := p.Prop(i)
	if err != nil {
		return 0, err
	}
	return p.add(CopyStep(prop, i)), nil
}

// CloseScope discharges the innermost assumption: the current scope is
// removed and folded into a ProofBox step of the parent scope, stored
// under the index of the assumption.
func (p *Proof) CloseScope() error {
	if len(p.scopes) == 1 {
		return ErrCannotCloseGlobalScope
	}
	closed := p.top()
	if closed.Len() == 0 {
		panic("fitch: open scope without an assumption")
	}
	p.scopes = p.scopes[:len(p.scopes)-1]

	box := NewProofBox(closed.Lines())
	p.top().insert(box.Start(), AssumptionStep(box))
	return nil
}

// ApplyRule checks the rule against the visible steps and, if it holds,
// adds its conclusion to the current scope. On error the proof is left
// unchanged.
func (p *Proof) ApplyRule(r Rule) (StepIndex, error) {
	prop, err := r.derive(p)
	if err != nil {
		return 0, err
	}
	return p.add(RuleStep(prop, r)), nil
}

// Undo reverts the most recent index allocation and reports whether there
// was anything to undo.
//
// Undo is coarse around assumptions: undoing an assumption removes its
// whole scope. If the latest step was already discharged into a box, the
// box is reopened first, so undo after a discharge continues inside the
// restored scope.
func (p *Proof) Undo() bool {
	if p.next <= 1 {
		p.next = 1
		return false
	}
	latest := p.next - 1

	for {
		top := p.top()
		if step, ok := top.Get(latest); ok && !isFolded(latest, step) {
			if step.Kind == StepAssumption {
				if len(p.scopes) == 1 {
					panic("fitch: assumption in the global scope")
				}
				p.scopes = p.scopes[:len(p.scopes)-1]
			} else {
				top.remove(latest)
			}
			break
		}

		// the latest step must be inside the box discharged last
		line, ok := top.last()
		box, isBox := line.Step.Prop.(ProofBox)
		if !ok || !isBox || !isFolded(line.Index, line.Step) || !box.Contains(latest) {
			panic("fitch: step " + latest.String() + " is not reachable for undo")
		}
		top.remove(line.Index)
		p.scopes = append(p.scopes, scopeFromLines(box.lines))
	}

	p.next = latest
	return true
}

// Step looks up a step by index, searching from the innermost scope
// outward. Steps inside discharged boxes are only reachable through the
// box itself.
func (p *Proof) Step(i StepIndex) (Step, error) {
	for k := len(p.scopes) - 1; k >= 0; k-- {
		if step, ok := p.scopes[k].Get(i); ok {
			return step, nil
		}
	}
	return Step{}, &InvalidStepIndexError{Index: i}
}

// Prop returns the proposition of a visible step.
func (p *Proof) Prop(i StepIndex) (Prop, error) {
	step, err := p.Step(i)
	if err != nil {
		return nil, err
	}
	return step.Prop, nil
}

// Depth returns the number of scopes, 1 when no box is open.
func (p *Proof) Depth() int { return len(p.scopes) }

// Scopes returns the scopes from the outermost to the innermost.
func (p *Proof) Scopes() []*Scope {
	return append([]*Scope(nil), p.scopes...)
}

// NextIndex returns the index the next step will receive.
func (p *Proof) NextIndex() StepIndex { return p.next }

// IsEmpty reports whether no step has been allocated yet.
func (p *Proof) IsEmpty() bool { return p.next == 1 }

func (p *Proof) top() *Scope {
	return p.scopes[len(p.scopes)-1]
}

func (p *Proof) add(step Step) StepIndex {
	i := p.next
	p.next++
	p.top().insert(i, step)
	return i
}

// isFolded reports whether step is a discharged box stored under its own
// assumption index.
func isFolded(i StepIndex, step Step) bool {
	box, ok := step.Prop.(ProofBox)
	return ok && step.Kind == StepAssumption && box.Len() > 0 && box.Start() == i
}
