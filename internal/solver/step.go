package solver

// StepKind identifies which cell of the bus-stop workspace a step fills in.
type StepKind string

const (
	// StepQuotientDigit is one digit written above the bus stop.
	StepQuotientDigit StepKind = "quotient-digit"

	// StepMultiply is divisor × quotient digit, written below the working number.
	StepMultiply StepKind = "multiply-result"

	// StepSubtract is working number − product.
	StepSubtract StepKind = "subtraction-result"

	// StepBringDown appends the next dividend digit to the subtraction result.
	StepBringDown StepKind = "bring-down"
)

// Step is one cell of the expanded long-division working. Steps are immutable
// and totally ordered by SequenceIndex within their Solution.
type Step struct {
	// ID uniquely identifies the step (UUID).
	ID string

	Kind StepKind

	// SequenceIndex is the zero-based position in the solution's step order.
	SequenceIndex int

	// Expected is the correct value for this cell as an integer string.
	Expected string

	// DigitPosition is the zero-based dividend column this step lines up
	// under, so a renderer can place it spatially.
	DigitPosition int

	// BroughtDigit is the dividend digit appended by a bring-down step.
	// Zero-valued for other kinds.
	BroughtDigit int

	// WorkingNumber is the new working number formed by a bring-down step.
	// Zero-valued for other kinds.
	WorkingNumber int
}
