package rewards

import "time"

// UnlockedReward is one collectible earned at a milestone. Created exactly
// once per crossing, in milestone order, and never mutated afterwards;
// ownership passes to the save file.
type UnlockedReward struct {
	// RewardID uniquely identifies the unlock (UUID).
	RewardID string

	// SubjectName is the roster subject the milestone resolved to.
	SubjectName string

	// ImagePath points at the generated artifact in the content store.
	ImagePath string

	EarnedAt time.Time

	// MilestoneSolvedCount is the solved-problem count the milestone sits at.
	MilestoneSolvedCount int
}

// Crossing is one milestone passed between two solved counts.
type Crossing struct {
	// Milestone is the 1-based milestone number.
	Milestone int

	// SolvedCount is the solved total at which the milestone sits
	// (Milestone * interval).
	SolvedCount int

	// SubjectName is the roster subject bound to the milestone. Empty when
	// PoolExhausted is set.
	SubjectName string

	// PoolExhausted marks a milestone past the end of the roster. Not an
	// error: the player keeps playing, there is just nothing left to unlock.
	PoolExhausted bool
}
