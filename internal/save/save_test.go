package save

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name   string
		player string
		want   string
	}{
		{"simple", "maya", "maya-save.json"},
		{"mixed case", "Maya", "maya-save.json"},
		{"internal whitespace", "Maya  Rose Patel", "maya-rose-patel-save.json"},
		{"surrounding whitespace", "  maya \t", "maya-save.json"},
		{"empty", "   ", "player-save.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.player))
		})
	}
}

func TestLoadMissingFileIsNewPlayer(t *testing.T) {
	m := NewManager(t.TempDir())

	f, err := m.Load("maya")
	require.NoError(t, err)

	assert.Equal(t, "maya", f.PlayerName)
	assert.Equal(t, SchemaVersion, f.SchemaVersion)
	assert.Equal(t, 1, f.CurrentDifficultyLevel)
	assert.Zero(t, f.TotalProblemsSolved)
	assert.Empty(t, f.UnlockedRewards)
	assert.Empty(t, f.SessionHistory)
}

func TestWriteThenLoadRoundTrip(t *testing.T) {
	m := NewManager(t.TempDir())

	ended := time.Date(2026, 3, 14, 16, 0, 0, 0, time.UTC)
	f := NewFile("Maya Patel")
	f.TotalProblemsSolved = 12
	f.TotalProblemsAttempted = 15
	f.CurrentDifficultyLevel = 2
	f.SessionsPlayed = 3
	f.UnlockedRewards = []RewardEntry{
		{SubjectName: "Axolotl", ImagePath: "/art/axolotl.png", EarnedAt: ended, MilestoneSolvedCount: 5},
		{SubjectName: "Fennec Fox", ImagePath: "/art/fennec-fox.png", EarnedAt: ended, MilestoneSolvedCount: 10},
	}
	f.SessionHistory = []SessionEntry{
		{SessionID: "s-1", StartedAt: ended.Add(-time.Hour), EndedAt: &ended, SolvedProblems: 4, AttemptedProblems: 5},
		{SessionID: "s-2", StartedAt: ended, SolvedProblems: 8, AttemptedProblems: 10},
	}

	require.NoError(t, m.Write(f))
	assert.False(t, f.UpdatedAt.IsZero(), "Write stamps UpdatedAt")

	got, err := m.Load("Maya Patel")
	require.NoError(t, err)

	assert.Equal(t, f.PlayerName, got.PlayerName)
	assert.Equal(t, 12, got.TotalProblemsSolved)
	assert.Equal(t, 15, got.TotalProblemsAttempted)
	assert.Equal(t, 3, got.SessionsPlayed)
	require.Len(t, got.UnlockedRewards, 2)
	assert.Equal(t, "Axolotl", got.UnlockedRewards[0].SubjectName)
	require.Len(t, got.SessionHistory, 2)
	assert.Nil(t, got.SessionHistory[1].EndedAt, "open session keeps null endedAt")
	require.NotNil(t, got.SessionHistory[0].EndedAt)
	assert.True(t, got.SessionHistory[0].EndedAt.Equal(ended))
}

func TestWriteIsAtomicNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	require.NoError(t, m.Write(NewFile("maya")))
	require.NoError(t, m.Write(NewFile("maya")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "maya-save.json", entries[0].Name())
}

func TestLoadRejectsMalformedSave(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	cases := []struct {
		name string
		body string
	}{
		{"not json", "{not json"},
		{"missing required fields", `{"schemaVersion": "1.0.0"}`},
		{"wrong type", `{
			"schemaVersion": "1.0.0", "playerName": "maya",
			"totalProblemsSolved": "twelve", "totalProblemsAttempted": 0,
			"currentDifficultyLevel": 1, "sessionsPlayed": 0,
			"unlockedRewards": [], "sessionHistory": [],
			"updatedAt": "2026-03-14T16:00:00Z"
		}`},
		{"negative counter", `{
			"schemaVersion": "1.0.0", "playerName": "maya",
			"totalProblemsSolved": -1, "totalProblemsAttempted": 0,
			"currentDifficultyLevel": 1, "sessionsPlayed": 0,
			"unlockedRewards": [], "sessionHistory": [],
			"updatedAt": "2026-03-14T16:00:00Z"
		}`},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, FileName("maya"))
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := m.Load("maya")
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsIncompatibleMajorVersion(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	body := `{
		"schemaVersion": "2.0.0", "playerName": "maya",
		"totalProblemsSolved": 0, "totalProblemsAttempted": 0,
		"currentDifficultyLevel": 1, "sessionsPlayed": 0,
		"unlockedRewards": [], "sessionHistory": [],
		"updatedAt": "2026-03-14T16:00:00Z"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName("maya")), []byte(body), 0o644))

	_, err := m.Load("maya")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incompatible")
}

func TestLoadAcceptsSameMajorNewerMinor(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	body := `{
		"schemaVersion": "1.3.0", "playerName": "maya",
		"totalProblemsSolved": 7, "totalProblemsAttempted": 9,
		"currentDifficultyLevel": 1, "sessionsPlayed": 2,
		"unlockedRewards": [], "sessionHistory": [],
		"updatedAt": "2026-03-14T16:00:00Z"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName("maya")), []byte(body), 0o644))

	f, err := m.Load("maya")
	require.NoError(t, err)
	assert.Equal(t, 7, f.TotalProblemsSolved)
}
