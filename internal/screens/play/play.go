package play

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/divvy/internal/game"
	"github.com/abhisek/divvy/internal/rewards"
	"github.com/abhisek/divvy/internal/screen"
	"github.com/abhisek/divvy/internal/solver"
	"github.com/abhisek/divvy/internal/ui/components"
	"github.com/abhisek/divvy/internal/ui/layout"
)

const toastDuration = 6 * time.Second

// RewardEvent is an asynchronous notification from the reward pipeline,
// delivered to the screen through its event channel.
type RewardEvent struct {
	// Reward is set when artwork generation succeeded and the reward was
	// applied.
	Reward *rewards.UnlockedReward

	// Crossing and Err are set when generation failed.
	Crossing *rewards.Crossing
	Err      error
}

// PlayScreen implements screen.Screen for the practice loop.
type PlayScreen struct {
	orch   *game.Orchestrator
	state  *game.GameState
	events <-chan RewardEvent

	input       components.TextInput
	feedback    solver.Feedback
	hasFeedback bool
	lastOutcome solver.Outcome

	// celebration is the just-finished problem, shown as a banner above the
	// freshly chained one.
	celebration *game.CompletionSummary

	toast     string
	toastGood bool
	toastSeq  int

	errMsg string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates a PlayScreen. The event channel may be nil when no reward
// pipeline is wired (tests, offline stats tooling).
func New(orch *game.Orchestrator, state *game.GameState, events <-chan RewardEvent) *PlayScreen {
	return &PlayScreen{
		orch:   orch,
		state:  state,
		events: events,
		input:  newAnswerInput(),
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.input.Init()}
	if !s.state.Active() {
		cmds = append(cmds, s.startProblem())
	}
	if s.events != nil {
		cmds = append(cmds, waitForRewardEvent(s.events))
	}
	return tea.Batch(cmds...)
}

func (s *PlayScreen) Title() string {
	return "Practice"
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check answer"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case problemStartedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case rewardUnlockedMsg:
		s.toast = msg.Reward.SubjectName + " joined your collection!"
		s.toastGood = true
		s.toastSeq++
		return s, tea.Batch(
			waitForRewardEvent(s.events),
			expireToast(s.toastSeq),
		)

	case rewardFailedMsg:
		s.toast = "Your new friend is shy... we'll try again later."
		s.toastGood = false
		s.toastSeq++
		return s, tea.Batch(
			waitForRewardEvent(s.events),
			expireToast(s.toastSeq),
		)

	case toastExpiredMsg:
		if msg.seq == s.toastSeq {
			s.toast = ""
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, nil
	}

	if msg.String() == "enter" {
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit checks the typed value against the step in focus.
func (s *PlayScreen) submit() (screen.Screen, tea.Cmd) {
	if !s.state.Active() {
		return s, nil
	}
	value := s.input.Value()
	if value == "" {
		return s, nil
	}

	res, err := s.orch.ApplyStepInput(s.state, value)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.feedback = res.Feedback
	s.hasFeedback = true
	s.lastOutcome = res.Outcome

	switch res.Outcome {
	case solver.OutcomeIncorrect:
		// Keep the typed value so the player can fix it.
		s.input.Submit(false)
		return s, nil

	case solver.OutcomeCorrect:
		s.celebration = nil
		s.input.Reset()
		return s, nil
	}

	// Complete: the orchestrator already chained the next problem.
	s.celebration = res.Completed
	s.input.Reset()
	return s, nil
}

// startProblem kicks off the first problem of the screen.
func (s *PlayScreen) startProblem() tea.Cmd {
	return func() tea.Msg {
		res, err := s.orch.StartNextProblem(s.state)
		return problemStartedMsg{Result: res, Err: err}
	}
}

func newAnswerInput() components.TextInput {
	return components.NewTextInput("Type a number...", true, 12)
}

// waitForRewardEvent blocks on the reward channel and converts the event to
// a screen message. Re-armed after every delivery.
func waitForRewardEvent(events <-chan RewardEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		if ev.Reward != nil {
			return rewardUnlockedMsg{Reward: *ev.Reward}
		}
		if ev.Crossing != nil {
			return rewardFailedMsg{Crossing: *ev.Crossing, Err: ev.Err}
		}
		return nil
	}
}

func expireToast(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}
