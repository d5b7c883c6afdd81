package solver

// Tone is the emotional register of a feedback message.
type Tone string

const (
	ToneEncouragement Tone = "encouragement"
	ToneRetry         Tone = "retry"
	ToneCelebration   Tone = "celebration"
)

// Feedback is a display hint keyed by (outcome, step kind). It is a pure
// lookup value, not business logic.
type Feedback struct {
	Tone    Tone
	Message string
}

var feedbackTable = map[Outcome]map[StepKind]Feedback{
	OutcomeCorrect: {
		StepQuotientDigit: {ToneEncouragement, "Nice! That digit goes on top."},
		StepMultiply:      {ToneEncouragement, "Multiplied just right."},
		StepSubtract:      {ToneEncouragement, "Subtraction spot on."},
		StepBringDown:     {ToneEncouragement, "Brought down and ready to go."},
	},
	OutcomeIncorrect: {
		StepQuotientDigit: {ToneRetry, "Not quite. How many times does the divisor fit?"},
		StepMultiply:      {ToneRetry, "Check that multiplication again."},
		StepSubtract:      {ToneRetry, "Take another look at the subtraction."},
		StepBringDown:     {ToneRetry, "Which digit comes down next?"},
	},
	OutcomeComplete: {
		StepQuotientDigit: {ToneCelebration, "That's the whole problem. Fantastic!"},
		StepMultiply:      {ToneCelebration, "All done. Great dividing!"},
		StepSubtract:      {ToneCelebration, "Finished! You nailed it."},
		StepBringDown:     {ToneCelebration, "Problem complete. Superb!"},
	},
}

// feedbackFor looks up the feedback descriptor for an outcome and step kind.
func feedbackFor(outcome Outcome, kind StepKind) Feedback {
	if byKind, ok := feedbackTable[outcome]; ok {
		if fb, ok := byKind[kind]; ok {
			return fb
		}
	}
	// Unknown combinations should not happen; fall back to a neutral retry.
	return Feedback{ToneRetry, "Give it another try."}
}
