package play

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/divvy/internal/artcache"
	"github.com/abhisek/divvy/internal/game"
	"github.com/abhisek/divvy/internal/genimg"
	"github.com/abhisek/divvy/internal/problemgen"
	"github.com/abhisek/divvy/internal/rewards"
	"github.com/abhisek/divvy/internal/solver"
	"github.com/abhisek/divvy/internal/taskq"
)

func newTestScreen(t *testing.T) (*PlayScreen, *game.GameState) {
	t.Helper()

	queue := taskq.New()
	t.Cleanup(queue.Close)

	cache := artcache.New(
		artcache.NewContentStore(t.TempDir()),
		genimg.NewMockProvider(),
		time.Second,
		nil,
	)
	orch := game.New(game.Config{
		Generator: problemgen.New(rand.New(rand.NewPCG(3, 3))),
		Resolver:  rewards.NewResolver(),
		Cache:     cache,
		Queue:     queue,
	})

	state := game.NewGameState(game.LifetimeProgress{})
	if _, err := orch.StartNextProblem(state); err != nil {
		t.Fatal(err)
	}
	return New(orch, state, nil), state
}

func TestSubmitCorrectAdvancesFocus(t *testing.T) {
	s, state := newTestScreen(t)

	s.input.Model.SetValue(state.CurrentStep().Expected)
	s.submit()

	if s.errMsg != "" {
		t.Fatalf("unexpected error: %s", s.errMsg)
	}
	if s.lastOutcome != solver.OutcomeCorrect {
		t.Fatalf("outcome = %s, want correct", s.lastOutcome)
	}
	if *state.ActiveStepIndex != 1 {
		t.Errorf("step index = %d, want 1", *state.ActiveStepIndex)
	}
	if s.input.Value() != "" {
		t.Error("input not cleared after correct answer")
	}
}

func TestSubmitIncorrectKeepsTypedValue(t *testing.T) {
	s, state := newTestScreen(t)

	s.input.Model.SetValue("999999")
	s.submit()

	if s.lastOutcome != solver.OutcomeIncorrect {
		t.Fatalf("outcome = %s, want incorrect", s.lastOutcome)
	}
	if *state.ActiveStepIndex != 0 {
		t.Errorf("focus moved on incorrect answer")
	}
	if s.input.Value() != "999999" {
		t.Error("typed value cleared; player should be able to fix it")
	}
	if s.feedback.Tone != solver.ToneRetry {
		t.Errorf("feedback tone = %s, want retry", s.feedback.Tone)
	}
}

func TestSubmitEmptyValueIsIgnored(t *testing.T) {
	s, _ := newTestScreen(t)

	s.submit()

	if s.hasFeedback {
		t.Error("empty submission produced feedback")
	}
}

func TestCompletingProblemShowsCelebration(t *testing.T) {
	s, state := newTestScreen(t)

	for i := 0; i < 100; i++ {
		s.input.Model.SetValue(state.CurrentStep().Expected)
		s.submit()
		if s.celebration != nil {
			break
		}
	}

	if s.celebration == nil {
		t.Fatal("no celebration after completing the problem")
	}
	if s.lastOutcome != solver.OutcomeComplete {
		t.Errorf("outcome = %s, want complete", s.lastOutcome)
	}
	// The orchestrator chained the next problem underneath the banner.
	if !state.Active() {
		t.Error("no next problem after completion")
	}
	if s.feedback.Tone != solver.ToneCelebration {
		t.Errorf("feedback tone = %s, want celebration", s.feedback.Tone)
	}
}

func TestRewardToastLifecycle(t *testing.T) {
	s, _ := newTestScreen(t)
	s.events = make(chan RewardEvent)

	s.Update(rewardUnlockedMsg{Reward: rewards.UnlockedReward{SubjectName: "Axolotl"}})
	if s.toast == "" || !s.toastGood {
		t.Fatal("unlock did not raise a toast")
	}
	firstSeq := s.toastSeq

	// A stale expiry must not clear a newer toast.
	s.Update(rewardUnlockedMsg{Reward: rewards.UnlockedReward{SubjectName: "Quokka"}})
	s.Update(toastExpiredMsg{seq: firstSeq})
	if s.toast == "" {
		t.Error("stale expiry cleared the current toast")
	}

	s.Update(toastExpiredMsg{seq: s.toastSeq})
	if s.toast != "" {
		t.Error("toast not cleared after its own expiry")
	}
}

func TestViewRendersWithoutPanic(t *testing.T) {
	s, state := newTestScreen(t)

	if out := s.View(100, 30); out == "" {
		t.Error("empty view for active problem")
	}

	s.input.Model.SetValue(state.CurrentStep().Expected)
	s.submit()
	if out := s.View(100, 30); out == "" {
		t.Error("empty view after feedback")
	}
}
