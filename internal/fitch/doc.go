// Package fitch implements the proof evaluation engine of a natural
// deduction proof assistant for propositional logic.
//
// A Proof is a stack of scopes. The outermost scope holds premises and
// facts derived from them; every assumption opens a new scope, and
// discharging closes the innermost scope into a single ProofBox step in
// its parent. Step indices are allocated from one counter shared by all
// scopes, so an index identifies a step for the whole lifetime of a proof.
//
// Supported inference rules (Huth & Ryan, "Logic in Computer Science"):
//   - conjunction: AndI, AndELhs, AndERhs
//   - disjunction: OrILhs, OrIRhs, OrE
//   - negation: NegI, NegE, DoubleNegI, DoubleNegE
//   - implication: ImplyI, ImplyE, ModusTollens
//   - absurdity: BottomE, ProofByContradiction, LawOfExcludedMiddle
//
// Negation is not a primitive: ¬φ is always Imply{φ, Bottom{}}.
//
// Every operation either succeeds or returns an error and leaves the proof
// untouched. The engine performs no I/O and is not safe for concurrent use;
// a session that shares a Proof between goroutines must guard it with a
// single lock.
package fitch
