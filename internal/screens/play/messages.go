package play

import (
	"github.com/abhisek/divvy/internal/game"
	"github.com/abhisek/divvy/internal/rewards"
)

// problemStartedMsg is sent when the first problem of the screen is ready.
type problemStartedMsg struct {
	Result *game.StartResult
	Err    error
}

// rewardUnlockedMsg is sent by the app when a milestone reward finished
// generating and was applied.
type rewardUnlockedMsg struct {
	Reward rewards.UnlockedReward
}

// rewardFailedMsg is sent by the app when reward artwork generation failed.
type rewardFailedMsg struct {
	Crossing rewards.Crossing
	Err      error
}

// toastExpiredMsg clears the reward toast after its display period.
type toastExpiredMsg struct {
	seq int
}
