package solver

import (
	"fmt"
	"strconv"
	"strings"
)

// Outcome classifies a validated step submission.
type Outcome string

const (
	// OutcomeCorrect advances focus to the next step.
	OutcomeCorrect Outcome = "correct"

	// OutcomeComplete means the last step was answered correctly.
	OutcomeComplete Outcome = "complete"

	// OutcomeIncorrect keeps focus at the current step.
	OutcomeIncorrect Outcome = "incorrect"
)

// Result is what a single validation returns: the outcome, the next focus
// index, and the feedback descriptor for the UI.
type Result struct {
	Outcome Outcome

	// NextIndex is the step that should receive focus: currentIndex+1 on
	// correct, currentIndex on incorrect, -1 on complete (no focus).
	NextIndex int

	Feedback Feedback
}

// Validate checks a submitted value against the step at index.
//
// The submission is normalized by stripping every non-digit rune and
// comparing the result as an integer, a deliberate tolerance for leading
// zeros and stray characters. A submission with no digits at all is simply
// incorrect, never an error.
//
// Errors indicate programming or data faults (empty step sequence, index out
// of range, malformed expected value) and must not be surfaced to the player.
func Validate(steps []Step, index int, submitted string) (Result, error) {
	if len(steps) == 0 {
		return Result{}, fmt.Errorf("validate: empty step sequence")
	}
	if index < 0 || index >= len(steps) {
		return Result{}, fmt.Errorf("validate: step index %d out of range [0, %d)", index, len(steps))
	}

	step := steps[index]
	expected, err := strconv.Atoi(step.Expected)
	if err != nil {
		return Result{}, fmt.Errorf("validate: step %d has malformed expected value %q", index, step.Expected)
	}

	normalized := stripNonDigits(submitted)
	if normalized == "" {
		return incorrectResult(step, index), nil
	}
	value, err := strconv.Atoi(normalized)
	if err != nil {
		// Digits only but unparseable means absurd length; treat as wrong.
		return incorrectResult(step, index), nil
	}

	if value != expected {
		return incorrectResult(step, index), nil
	}

	if index == len(steps)-1 {
		return Result{
			Outcome:   OutcomeComplete,
			NextIndex: -1,
			Feedback:  feedbackFor(OutcomeComplete, step.Kind),
		}, nil
	}
	return Result{
		Outcome:   OutcomeCorrect,
		NextIndex: index + 1,
		Feedback:  feedbackFor(OutcomeCorrect, step.Kind),
	}, nil
}

func incorrectResult(step Step, index int) Result {
	return Result{
		Outcome:   OutcomeIncorrect,
		NextIndex: index,
		Feedback:  feedbackFor(OutcomeIncorrect, step.Kind),
	}
}

// stripNonDigits removes every rune outside '0'-'9'.
func stripNonDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
