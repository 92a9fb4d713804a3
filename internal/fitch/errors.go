package fitch

import (
	"errors"
	"fmt"
)

// ErrCannotCloseGlobalScope is returned when discharging with no open box.
var ErrCannotCloseGlobalScope = errors.New("there is no open proof box to close")

// InvalidStepIndexError reports a reference to a step that is not visible
// from the current scope.
type InvalidStepIndexError struct {
	Index StepIndex
}

func (e *InvalidStepIndexError) Error() string {
	return fmt.Sprintf("invalid step index %d", e.Index)
}

// ExpectedPropVariantError reports a rule input with the wrong top-level
// shape.
type ExpectedPropVariantError struct {
	Expected Variant
	Got      Prop
}

func (e *ExpectedPropVariantError) Error() string {
	return fmt.Sprintf("expected %s but got %q (%s)", e.Expected, render(e.Got), variantOf(e.Got))
}

// PropMismatchError reports two propositions a rule requires to be equal.
type PropMismatchError struct {
	Expected Prop
	Got      Prop
}

func (e *PropMismatchError) Error() string {
	return fmt.Sprintf("expected %q but got %q", render(e.Expected), render(e.Got))
}

func variantOf(p Prop) Variant {
	if p == nil {
		return 0
	}
	return p.Variant()
}

func checkEq(expected, got Prop) error {
	if !equal(expected, got) {
		return &PropMismatchError{Expected: expected, Got: got}
	}
	return nil
}

func expectVariant(expected Variant, got Prop) error {
	return &ExpectedPropVariantError{Expected: expected, Got: got}
}
