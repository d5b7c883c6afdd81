package game

import (
	"github.com/abhisek/divvy/internal/problemgen"
	"github.com/abhisek/divvy/internal/rewards"
	"github.com/abhisek/divvy/internal/solver"
)

// SessionProgress counts work done in the current session only; it resets
// every launch and is recorded into the save file's session history.
type SessionProgress struct {
	SolvedProblems    int
	AttemptedProblems int
}

// LifetimeProgress persists across sessions. Counters are monotonically
// non-decreasing within a process lifetime.
type LifetimeProgress struct {
	TotalProblemsSolved    int
	TotalProblemsAttempted int
	CurrentDifficultyLevel int
	RewardsUnlocked        int
}

// Progress groups session and lifetime counters. The two are independent:
// session counters never feed back into lifetime totals except through the
// orchestrator's own increments.
type Progress struct {
	Session  SessionProgress
	Lifetime LifetimeProgress
}

// GameState is the mutable aggregate the orchestrator drives. One value per
// player session; the orchestrator is its only writer during play.
type GameState struct {
	// ActiveProblem is the problem in progress, nil between problems.
	ActiveProblem *problemgen.DivisionProblem

	// Solution is the expanded step sequence for ActiveProblem.
	Solution *solver.Solution

	// ActiveStepIndex is the step currently in focus. nil iff no problem is
	// in progress.
	ActiveStepIndex *int

	// RevealedStepCount is how many steps have been answered correctly,
	// always <= len(Solution.Steps).
	RevealedStepCount int

	Progress Progress

	// UnlockedRewards accumulates rewards in milestone order. Entries are
	// appended by the reward pipeline and never mutated.
	UnlockedRewards []rewards.UnlockedReward
}

// NewGameState builds a fresh state around persisted lifetime progress.
func NewGameState(lifetime LifetimeProgress) *GameState {
	if lifetime.CurrentDifficultyLevel < 1 {
		lifetime.CurrentDifficultyLevel = LevelForSolved(lifetime.TotalProblemsSolved)
	}
	return &GameState{
		Progress: Progress{Lifetime: lifetime},
	}
}

// Active reports whether a problem is in progress.
func (s *GameState) Active() bool {
	return s.ActiveStepIndex != nil
}

// CurrentStep returns the step in focus, or nil when idle.
func (s *GameState) CurrentStep() *solver.Step {
	if s.ActiveStepIndex == nil || s.Solution == nil {
		return nil
	}
	return s.Solution.StepAt(*s.ActiveStepIndex)
}
