package game

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/divvy/internal/artcache"
	"github.com/abhisek/divvy/internal/genimg"
	"github.com/abhisek/divvy/internal/problemgen"
	"github.com/abhisek/divvy/internal/rewards"
	"github.com/abhisek/divvy/internal/solver"
	"github.com/abhisek/divvy/internal/taskq"
)

type fixture struct {
	orch     *Orchestrator
	state    *GameState
	queue    *taskq.Queue
	provider *genimg.MockProvider
	unlocked []rewards.UnlockedReward
	failures []rewards.Crossing
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWith(t, nil)
}

func newFixtureWith(t *testing.T, provider genimg.Provider) *fixture {
	t.Helper()

	f := &fixture{
		provider: genimg.NewMockProvider(),
		queue:    taskq.New(),
		state:    NewGameState(LifetimeProgress{}),
	}
	t.Cleanup(f.queue.Close)
	if provider == nil {
		provider = f.provider
	}

	cache := artcache.New(artcache.NewContentStore(t.TempDir()), provider, time.Second, nil)
	f.orch = New(Config{
		Generator: problemgen.New(rand.New(rand.NewPCG(7, 7))),
		Resolver:  rewards.NewResolver(),
		Cache:     cache,
		Queue:     f.queue,
		OnReward:  func(r rewards.UnlockedReward) { f.unlocked = append(f.unlocked, r) },
		OnRewardError: func(c rewards.Crossing, err error) {
			f.failures = append(f.failures, c)
		},
	})
	return f
}

// solveActive answers every remaining step of the active problem correctly
// and returns the completing result.
func solveActive(t *testing.T, f *fixture) *InputResult {
	t.Helper()
	for i := 0; i < 100; i++ {
		step := f.state.CurrentStep()
		if step == nil {
			t.Fatal("no step in focus")
		}
		res, err := f.orch.ApplyStepInput(f.state, step.Expected)
		if err != nil {
			t.Fatal(err)
		}
		if res.Completed != nil {
			return res
		}
	}
	t.Fatal("problem did not complete within 100 steps")
	return nil
}

func TestApplyStepInputRequiresActiveProblem(t *testing.T) {
	f := newFixture(t)

	_, err := f.orch.ApplyStepInput(f.state, "3")
	if !errors.Is(err, ErrNoActiveProblem) {
		t.Fatalf("err = %v, want ErrNoActiveProblem", err)
	}
}

func TestStartNextProblemInitializesState(t *testing.T) {
	f := newFixture(t)

	res, err := f.orch.StartNextProblem(f.state)
	if err != nil {
		t.Fatal(err)
	}

	if !f.state.Active() {
		t.Fatal("state not active after start")
	}
	if *f.state.ActiveStepIndex != 0 {
		t.Errorf("ActiveStepIndex = %d, want 0", *f.state.ActiveStepIndex)
	}
	if f.state.RevealedStepCount != 0 {
		t.Errorf("RevealedStepCount = %d, want 0", f.state.RevealedStepCount)
	}
	if f.state.Progress.Session.AttemptedProblems != 1 {
		t.Errorf("session attempted = %d, want 1", f.state.Progress.Session.AttemptedProblems)
	}
	if f.state.Progress.Lifetime.TotalProblemsAttempted != 1 {
		t.Errorf("lifetime attempted = %d, want 1", f.state.Progress.Lifetime.TotalProblemsAttempted)
	}
	if res.FirstStepID != f.state.Solution.Steps[0].ID {
		t.Error("FirstStepID does not match the first step")
	}
	if res.StepCount != len(f.state.Solution.Steps) {
		t.Errorf("StepCount = %d, want %d", res.StepCount, len(f.state.Solution.Steps))
	}
}

func TestIncorrectInputKeepsFocus(t *testing.T) {
	f := newFixture(t)
	if _, err := f.orch.StartNextProblem(f.state); err != nil {
		t.Fatal(err)
	}

	// An answer that cannot match any step value.
	res, err := f.orch.ApplyStepInput(f.state, "999999999")
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != solver.OutcomeIncorrect {
		t.Fatalf("outcome = %s, want incorrect", res.Outcome)
	}
	if *f.state.ActiveStepIndex != 0 {
		t.Errorf("focus moved to %d on incorrect input", *f.state.ActiveStepIndex)
	}
	if f.state.RevealedStepCount != 0 {
		t.Errorf("RevealedStepCount = %d, want 0", f.state.RevealedStepCount)
	}
}

func TestCorrectInputAdvancesFocus(t *testing.T) {
	f := newFixture(t)
	if _, err := f.orch.StartNextProblem(f.state); err != nil {
		t.Fatal(err)
	}

	step := f.state.CurrentStep()
	res, err := f.orch.ApplyStepInput(f.state, step.Expected)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != solver.OutcomeCorrect {
		t.Fatalf("outcome = %s, want correct", res.Outcome)
	}
	if *f.state.ActiveStepIndex != 1 {
		t.Errorf("ActiveStepIndex = %d, want 1", *f.state.ActiveStepIndex)
	}
	if f.state.RevealedStepCount != 1 {
		t.Errorf("RevealedStepCount = %d, want 1", f.state.RevealedStepCount)
	}
}

func TestCompleteAutoChainsNextProblem(t *testing.T) {
	f := newFixture(t)
	if _, err := f.orch.StartNextProblem(f.state); err != nil {
		t.Fatal(err)
	}

	res := solveActive(t, f)

	if res.Outcome != solver.OutcomeComplete {
		t.Fatalf("outcome = %s, want complete", res.Outcome)
	}
	if res.Completed.LifetimeSolved != 1 {
		t.Errorf("LifetimeSolved = %d, want 1", res.Completed.LifetimeSolved)
	}
	if res.Next == nil {
		t.Fatal("no auto-chained next problem")
	}
	if !f.state.Active() {
		t.Fatal("state idle after auto-chain")
	}
	if *f.state.ActiveStepIndex != 0 {
		t.Errorf("next problem focus = %d, want 0", *f.state.ActiveStepIndex)
	}
	// Both problems count as attempted; one as solved.
	if got := f.state.Progress.Lifetime.TotalProblemsAttempted; got != 2 {
		t.Errorf("lifetime attempted = %d, want 2", got)
	}
	if got := f.state.Progress.Session.SolvedProblems; got != 1 {
		t.Errorf("session solved = %d, want 1", got)
	}
}

func TestMilestoneRewardAppliedInOrder(t *testing.T) {
	f := newFixture(t)
	if _, err := f.orch.StartNextProblem(f.state); err != nil {
		t.Fatal(err)
	}

	// Solve through two milestones (10 problems, interval 5).
	var crossings []rewards.Crossing
	for i := 0; i < 2*rewards.Interval; i++ {
		res := solveActive(t, f)
		crossings = append(crossings, res.Completed.Crossings...)
	}
	f.queue.Wait()

	if len(crossings) != 2 {
		t.Fatalf("crossings = %d, want 2", len(crossings))
	}
	unlocked := f.orch.Rewards(f.state)
	if len(unlocked) != 2 {
		t.Fatalf("unlocked = %d, want 2", len(unlocked))
	}

	roster := rewards.DefaultRoster()
	for i, r := range unlocked {
		if r.SubjectName != roster[i] {
			t.Errorf("reward %d subject = %q, want %q", i, r.SubjectName, roster[i])
		}
		if r.MilestoneSolvedCount != (i+1)*rewards.Interval {
			t.Errorf("reward %d milestone count = %d", i, r.MilestoneSolvedCount)
		}
		if r.ImagePath == "" || r.RewardID == "" {
			t.Errorf("reward %d missing artifact or id: %+v", i, r)
		}
	}
	if got := f.state.Progress.Lifetime.RewardsUnlocked; got != 2 {
		t.Errorf("RewardsUnlocked = %d, want 2", got)
	}
	if len(f.unlocked) != 2 {
		t.Errorf("OnReward fired %d times, want 2", len(f.unlocked))
	}
}

// Exercises the guarded stats snapshot with a reader running alongside the
// reward worker; meaningful under the race detector.
func TestStatsSnapshotSafeDuringRewardPipeline(t *testing.T) {
	f := newFixture(t)
	if _, err := f.orch.StartNextProblem(f.state); err != nil {
		t.Fatal(err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		prev := 0
		for {
			select {
			case <-stop:
				return
			default:
			}
			s := f.orch.Stats(f.state)
			if s.RewardsUnlocked < prev {
				t.Errorf("RewardsUnlocked went backwards: %d then %d", prev, s.RewardsUnlocked)
				return
			}
			prev = s.RewardsUnlocked
		}
	}()

	for i := 0; i < rewards.Interval; i++ {
		solveActive(t, f)
	}
	f.queue.Wait()
	close(stop)
	<-done

	if got := f.orch.Stats(f.state).RewardsUnlocked; got != 1 {
		t.Errorf("RewardsUnlocked = %d, want 1", got)
	}
}

// brokenProvider fails every call, including prefetch lookaheads.
type brokenProvider struct{}

func (brokenProvider) Generate(context.Context, string) (*genimg.Image, error) {
	return nil, errors.New("provider down")
}

func (brokenProvider) ModelID() string { return "broken" }

func TestGenerationFailureSkipsRewardButKeepsCounters(t *testing.T) {
	f := newFixtureWith(t, brokenProvider{})
	if _, err := f.orch.StartNextProblem(f.state); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < rewards.Interval; i++ {
		solveActive(t, f)
	}
	f.queue.Wait()

	if got := f.state.Progress.Lifetime.TotalProblemsSolved; got != rewards.Interval {
		t.Errorf("solved = %d, want %d (counters unaffected by failure)", got, rewards.Interval)
	}
	if len(f.orch.Rewards(f.state)) != 0 {
		t.Error("reward applied despite generation failure")
	}
	if len(f.failures) != 1 {
		t.Fatalf("OnRewardError fired %d times, want 1", len(f.failures))
	}
	if f.failures[0].Milestone != 1 {
		t.Errorf("failed milestone = %d, want 1", f.failures[0].Milestone)
	}
}

func TestPrefetchTriggerNearMilestone(t *testing.T) {
	f := newFixture(t)
	if _, err := f.orch.StartNextProblem(f.state); err != nil {
		t.Fatal(err)
	}

	// Solve up to 3: the next start sees solved=3, two short of milestone 1.
	var last *InputResult
	for i := 0; i < 3; i++ {
		last = solveActive(t, f)
	}

	if last.Next.PrefetchSubject == "" {
		t.Fatal("prefetch did not fire with solved count near milestone")
	}
	roster := rewards.DefaultRoster()
	if last.Next.PrefetchSubject != roster[0] {
		t.Errorf("prefetch subject = %q, want %q", last.Next.PrefetchSubject, roster[0])
	}
}
