package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/divvy/internal/artcache"
	"github.com/abhisek/divvy/internal/problemgen"
	"github.com/abhisek/divvy/internal/rewards"
	"github.com/abhisek/divvy/internal/solver"
	"github.com/abhisek/divvy/internal/taskq"
)

// ErrNoActiveProblem is returned when input is applied with no problem in
// progress. A precondition violation in the caller, never a player-facing
// condition.
var ErrNoActiveProblem = errors.New("no active problem")

// Config wires an Orchestrator's collaborators.
type Config struct {
	Generator *problemgen.Generator
	Resolver  *rewards.Resolver
	Cache     *artcache.Cache
	Queue     *taskq.Queue
	Logger    *zap.Logger

	// OnReward fires after a reward's artwork is generated and the reward is
	// appended to state, in milestone order. Wire the save write here.
	OnReward func(rewards.UnlockedReward)

	// OnRewardError fires when artwork generation for a crossing fails.
	// The reward is not applied; solved counters are unaffected.
	OnRewardError func(crossing rewards.Crossing, err error)
}

// Orchestrator is the game-loop state machine. StartNextProblem and
// ApplyStepInput are expected to be called serially per player session; only
// the reward pipeline runs off the calling goroutine, serialized by the task
// queue.
type Orchestrator struct {
	gen      *problemgen.Generator
	resolver *rewards.Resolver
	cache    *artcache.Cache
	queue    *taskq.Queue
	logger   *zap.Logger

	onReward      func(rewards.UnlockedReward)
	onRewardError func(rewards.Crossing, error)

	// mu guards the GameState progress counters and reward slice, which are
	// shared between the caller and the task-queue worker.
	mu sync.Mutex
}

// New creates an Orchestrator.
func New(cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		gen:           cfg.Generator,
		resolver:      cfg.Resolver,
		cache:         cfg.Cache,
		queue:         cfg.Queue,
		logger:        logger,
		onReward:      cfg.OnReward,
		onRewardError: cfg.OnRewardError,
	}
}

// StartResult describes a freshly started problem.
type StartResult struct {
	Problem     problemgen.DivisionProblem
	FirstStepID string
	StepCount   int

	// PrefetchSubject is the subject warmed for the upcoming milestone, empty
	// when the lookahead trigger did not fire.
	PrefetchSubject string
	PrefetchStatus  artcache.PrefetchStatus
}

// CompletionSummary describes a just-finished problem.
type CompletionSummary struct {
	Problem        problemgen.DivisionProblem
	SessionSolved  int
	LifetimeSolved int

	// Crossings lists milestones crossed by this solve, ascending. Artwork
	// and reward application happen asynchronously on the task queue, in
	// this same order.
	Crossings []rewards.Crossing
}

// InputResult is the outcome of one submitted step value.
type InputResult struct {
	Outcome  solver.Outcome
	Feedback solver.Feedback

	// StepIndex is the step in focus after this input. -1 transiently on
	// completion; Next then carries the next problem's focus.
	StepIndex int

	// Completed is set when this input finished the problem.
	Completed *CompletionSummary

	// Next is the auto-chained next problem, set alongside Completed. The
	// player never sees an idle state between problems.
	Next *StartResult
}

// StartNextProblem generates a problem sized to the current difficulty,
// expands it, and puts its first step in focus. Problem generation has no
// legitimate failure mode with valid tiers, so any error is fatal.
func (o *Orchestrator) StartNextProblem(state *GameState) (*StartResult, error) {
	tier := TierForSolved(state.Progress.Lifetime.TotalProblemsSolved)

	p, err := o.gen.Generate(tier, tier.Policy)
	if err != nil {
		return nil, fmt.Errorf("start next problem: %w", err)
	}
	sol := solver.Solve(*p)

	idx := 0
	state.ActiveProblem = p
	state.Solution = sol
	state.ActiveStepIndex = &idx
	state.RevealedStepCount = 0
	o.mu.Lock()
	state.Progress.Session.AttemptedProblems++
	state.Progress.Lifetime.TotalProblemsAttempted++
	o.mu.Unlock()

	result := &StartResult{
		Problem:     *p,
		FirstStepID: sol.Steps[0].ID,
		StepCount:   len(sol.Steps),
	}

	// Lookahead: within two solves of the next milestone, warm its artwork
	// so the unlock feels instant.
	solved := state.Progress.Lifetime.TotalProblemsSolved
	if o.cache != nil && o.resolver.NearMilestone(solved) {
		next := o.resolver.Next(solved)
		if !next.PoolExhausted {
			result.PrefetchSubject = next.SubjectName
			result.PrefetchStatus = o.cache.Prefetch(next.SubjectName)
		}
	}

	o.logger.Debug("problem started",
		zap.String("problem_id", p.ID),
		zap.Int("tier", p.Tier),
		zap.Int("dividend", p.Dividend),
		zap.Int("divisor", p.Divisor))

	return result, nil
}

// ApplyStepInput validates the submitted value against the step in focus and
// advances the state machine. Completing the final step bumps solved
// counters, resolves milestone crossings, schedules their rewards, and
// auto-chains into the next problem.
func (o *Orchestrator) ApplyStepInput(state *GameState, submitted string) (*InputResult, error) {
	if !state.Active() {
		return nil, ErrNoActiveProblem
	}

	index := *state.ActiveStepIndex
	res, err := solver.Validate(state.Solution.Steps, index, submitted)
	if err != nil {
		return nil, err
	}

	result := &InputResult{
		Outcome:   res.Outcome,
		Feedback:  res.Feedback,
		StepIndex: res.NextIndex,
	}

	switch res.Outcome {
	case solver.OutcomeIncorrect:
		return result, nil

	case solver.OutcomeCorrect:
		*state.ActiveStepIndex = res.NextIndex
		state.RevealedStepCount++
		return result, nil
	}

	// Complete: reveal the last step, retire the problem, count the solve.
	state.RevealedStepCount = len(state.Solution.Steps)
	completed := *state.ActiveProblem
	state.ActiveProblem = nil
	state.Solution = nil
	state.ActiveStepIndex = nil

	o.mu.Lock()
	oldSolved := state.Progress.Lifetime.TotalProblemsSolved
	state.Progress.Session.SolvedProblems++
	state.Progress.Lifetime.TotalProblemsSolved++
	newSolved := state.Progress.Lifetime.TotalProblemsSolved
	state.Progress.Lifetime.CurrentDifficultyLevel = LevelForSolved(newSolved)
	o.mu.Unlock()

	crossings := o.resolver.Crossed(oldSolved, newSolved)
	for _, c := range crossings {
		o.scheduleReward(state, c)
	}

	result.Completed = &CompletionSummary{
		Problem:        completed,
		SessionSolved:  state.Progress.Session.SolvedProblems,
		LifetimeSolved: newSolved,
		Crossings:      crossings,
	}

	next, err := o.StartNextProblem(state)
	if err != nil {
		return nil, err
	}
	result.Next = next

	return result, nil
}

// Stats returns a snapshot of lifetime progress. RewardsUnlocked is written
// by the task-queue worker, so readers on other goroutines must come through
// here rather than touching state.Progress directly.
func (o *Orchestrator) Stats(state *GameState) LifetimeProgress {
	o.mu.Lock()
	defer o.mu.Unlock()
	return state.Progress.Lifetime
}

// Rewards returns a snapshot of the unlocked rewards, safe to call while the
// reward pipeline is running.
func (o *Orchestrator) Rewards(state *GameState) []rewards.UnlockedReward {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]rewards.UnlockedReward, len(state.UnlockedRewards))
	copy(out, state.UnlockedRewards)
	return out
}

// scheduleReward enqueues artwork generation and reward application for one
// crossing. The serial queue guarantees milestone order even when a slow
// generation for an earlier milestone races a fast one for a later one.
func (o *Orchestrator) scheduleReward(state *GameState, c rewards.Crossing) {
	if c.PoolExhausted {
		o.logger.Info("reward pool exhausted",
			zap.Int("milestone", c.Milestone))
		return
	}
	if o.queue == nil || o.cache == nil {
		return
	}

	o.queue.Enqueue(func() {
		path, err := o.cache.Resolve(context.Background(), c.SubjectName)
		if err != nil {
			o.logger.Warn("reward artwork failed",
				zap.Int("milestone", c.Milestone),
				zap.String("subject", c.SubjectName),
				zap.Error(err))
			if o.onRewardError != nil {
				o.onRewardError(c, err)
			}
			return
		}

		reward := rewards.UnlockedReward{
			RewardID:             uuid.NewString(),
			SubjectName:          c.SubjectName,
			ImagePath:            path,
			EarnedAt:             time.Now(),
			MilestoneSolvedCount: c.SolvedCount,
		}

		o.mu.Lock()
		state.UnlockedRewards = append(state.UnlockedRewards, reward)
		state.Progress.Lifetime.RewardsUnlocked++
		o.mu.Unlock()

		if o.onReward != nil {
			o.onReward(reward)
		}
	})
}
