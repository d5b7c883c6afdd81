package solver

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/abhisek/divvy/internal/problemgen"
)

// Solution is the fully expanded working for one problem. It owns its step
// sequence; the steps are never mutated after Solve returns.
type Solution struct {
	Problem problemgen.DivisionProblem

	// Steps is the ordered step sequence. Its length is 4k-1 for k quotient
	// digits: each quotient digit contributes quotient/multiply/subtract plus
	// a bring-down, except the last, which has no trailing bring-down.
	Steps []Step

	// InitialWorking is the working number before the first quotient digit:
	// the leading dividend digits consumed until the value reached the
	// divisor. 43 for 432 ÷ 12, since 4 < 12.
	InitialWorking int

	// LeadingDigits is how many dividend digits InitialWorking covers.
	LeadingDigits int
}

// Solve expands a problem into its manual bus-stop step sequence.
// Pure and deterministic: identical problems always yield identical
// sequences (modulo freshly assigned step IDs).
func Solve(p problemgen.DivisionProblem) *Solution {
	digits := splitDigits(p.Dividend)

	// Consume leading digits until the working number can hold the divisor.
	// This decides how many columns the first quotient digit spans, which is
	// what makes multi-digit divisors line up correctly.
	working := digits[0]
	pos := 0
	for working < p.Divisor && pos+1 < len(digits) {
		pos++
		working = working*10 + digits[pos]
	}

	sol := &Solution{
		Problem:        p,
		InitialWorking: working,
		LeadingDigits:  pos + 1,
	}

	for {
		qd := working / p.Divisor
		product := p.Divisor * qd
		rest := working - product

		sol.append(StepQuotientDigit, qd, pos, 0, 0)
		sol.append(StepMultiply, product, pos, 0, 0)
		sol.append(StepSubtract, rest, pos, 0, 0)

		if pos+1 >= len(digits) {
			break
		}
		pos++
		working = rest*10 + digits[pos]
		sol.append(StepBringDown, working, pos, digits[pos], working)
	}

	return sol
}

// QuotientDigits returns the number of quotient-digit steps in the solution.
func (s *Solution) QuotientDigits() int {
	n := 0
	for _, st := range s.Steps {
		if st.Kind == StepQuotientDigit {
			n++
		}
	}
	return n
}

// StepAt returns the step at index, or nil if out of range.
func (s *Solution) StepAt(index int) *Step {
	if index < 0 || index >= len(s.Steps) {
		return nil
	}
	return &s.Steps[index]
}

func (s *Solution) append(kind StepKind, expected, pos, brought, working int) {
	s.Steps = append(s.Steps, Step{
		ID:            uuid.NewString(),
		Kind:          kind,
		SequenceIndex: len(s.Steps),
		Expected:      strconv.Itoa(expected),
		DigitPosition: pos,
		BroughtDigit:  brought,
		WorkingNumber: working,
	})
}

// splitDigits returns n's decimal digits most significant first.
func splitDigits(n int) []int {
	if n == 0 {
		return []int{0}
	}
	var rev []int
	for n > 0 {
		rev = append(rev, n%10)
		n /= 10
	}
	out := make([]int, len(rev))
	for i, d := range rev {
		out[len(rev)-1-i] = d
	}
	return out
}
