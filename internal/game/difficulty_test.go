package game

import (
	"testing"

	"github.com/abhisek/divvy/internal/problemgen"
)

func TestLevelForSolved(t *testing.T) {
	cases := []struct {
		solved int
		want   int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{24, 2},
		{25, 3},
		{44, 3},
		{45, 4},
		{69, 4},
		{70, 5},
		{1000, 5},
	}
	for _, tc := range cases {
		if got := LevelForSolved(tc.solved); got != tc.want {
			t.Errorf("LevelForSolved(%d) = %d, want %d", tc.solved, got, tc.want)
		}
	}
}

func TestTierForSolvedMatchesLevel(t *testing.T) {
	for _, solved := range []int{0, 10, 25, 45, 70, 500} {
		tier := TierForSolved(solved)
		if tier.Tier != LevelForSolved(solved) {
			t.Errorf("TierForSolved(%d).Tier = %d, want %d",
				solved, tier.Tier, LevelForSolved(solved))
		}
	}
}

func TestLevelNeverExceedsMaxTier(t *testing.T) {
	if got := LevelForSolved(1 << 20); got > problemgen.MaxTier() {
		t.Errorf("LevelForSolved clamped to %d, exceeds max tier %d", got, problemgen.MaxTier())
	}
}
