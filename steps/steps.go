// Package steps records the rewrites made while simplifying an
// expression so they can be explained afterwards.
package steps

import (
	"fmt"
	"strings"
)

// Kind groups rewrites by the component that made them.
type Kind int

const (
	// PerformOp is an arithmetic rule applied to a pair of operands.
	PerformOp Kind = iota
	// Collect merges like terms of a sum.
	Collect
	// FactorOut extracts a common factor from a sum.
	FactorOut
	// Combine merges equal bases of a product.
	Combine
	// Cancel divides a common factor out of both sides of a quotient.
	Cancel
	// Unwrap replaces an operator holding a single operand by that
	// operand.
	Unwrap
)

func (k Kind) String() string {
	switch k {
	case PerformOp:
		return "perform"
	case Collect:
		return "collect"
	case FactorOut:
		return "factor"
	case Combine:
		return "combine"
	case Cancel:
		return "cancel"
	case Unwrap:
		return "unwrap"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Step is one recorded rewrite.
type Step struct {
	Kind   Kind
	Rule   string
	Before string
	After  string
}

func (s Step) String() string {
	if s.Rule == "" {
		return fmt.Sprintf("%v: %s => %s", s.Kind, s.Before, s.After)
	}
	return fmt.Sprintf("%v %s: %s => %s", s.Kind, s.Rule, s.Before, s.After)
}

// Steps accumulates Step values. A nil *Steps discards everything.
type Steps struct {
	list []Step
}

// On indicates that s records steps. Callers use it to avoid
// rendering text nobody will read.
func (s *Steps) On() bool {
	return s != nil
}

// Add records a step.
func (s *Steps) Add(k Kind, rule, before, after string) {
	if s == nil {
		return
	}
	s.list = append(s.list, Step{Kind: k, Rule: rule, Before: before, After: after})
}

// List returns the recorded steps in order.
func (s *Steps) List() []Step {
	if s == nil {
		return nil
	}
	return append([]Step(nil), s.list...)
}

// Len is the number of recorded steps.
func (s *Steps) Len() int {
	if s == nil {
		return 0
	}
	return len(s.list)
}

func (s *Steps) String() string {
	var lines []string
	for i, st := range s.List() {
		lines = append(lines, fmt.Sprintf("%3d %v", i+1, st))
	}
	return strings.Join(lines, "\n")
}
