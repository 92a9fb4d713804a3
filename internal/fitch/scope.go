package fitch

// Scope is one nesting level of a proof. Steps are keyed by index and
// additionally kept in insertion order, which is what identifies the
// assumption (first) and the derived proposition (last) of a box.
type Scope struct {
	steps map[StepIndex]Step
	order []StepIndex
}

func newScope() *Scope {
	return &Scope{steps: make(map[StepIndex]Step)}
}

func scopeFromLines(lines []Line) *Scope {
	s := newScope()
	for _, l := range lines {
		s.insert(l.Index, l.Step)
	}
	return s
}

// Len returns the number of steps in the scope.
func (s *Scope) Len() int { return len(s.order) }

// Get returns the step stored under i in this scope only.
func (s *Scope) Get(i StepIndex) (Step, bool) {
	step, ok := s.steps[i]
	return step, ok
}

// Lines returns the steps of the scope in insertion order.
func (s *Scope) Lines() []Line {
	lines := make([]Line, 0, len(s.order))
	for _, i := range s.order {
		lines = append(lines, Line{Index: i, Step: s.steps[i]})
	}
	return lines
}

func (s *Scope) insert(i StepIndex, step Step) {
	if _, exists := s.steps[i]; exists {
		panic("fitch: step index " + i.String() + " allocated twice")
	}
	s.steps[i] = step
	s.order = append(s.order, i)
}

func (s *Scope) remove(i StepIndex) {
	if _, ok := s.steps[i]; !ok {
		return
	}
	delete(s.steps, i)
	for k, idx := range s.order {
		if idx == i {
			s.order = append(s.order[:k], s.order[k+1:]...)
			break
		}
	}
}

// last returns the most recently inserted line.
func (s *Scope) last() (Line, bool) {
	if len(s.order) == 0 {
		return Line{}, false
	}
	i := s.order[len(s.order)-1]
	return Line{Index: i, Step: s.steps[i]}, true
}
