// Package save owns the single local JSON save file: one file per player,
// written atomically, validated against an embedded schema on load.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// SchemaVersion is the save-file schema this build reads and writes. Loads
// reject files whose major version differs.
const SchemaVersion = "1.0.0"

// RewardEntry is one unlocked collectible as persisted.
type RewardEntry struct {
	SubjectName          string    `json:"subjectName"`
	ImagePath            string    `json:"imagePath"`
	EarnedAt             time.Time `json:"earnedAt"`
	MilestoneSolvedCount int       `json:"milestoneSolvedCount"`
}

// SessionEntry records one play session. EndedAt is nil while the session is
// open or when the process exited without closing it.
type SessionEntry struct {
	SessionID         string     `json:"sessionId"`
	StartedAt         time.Time  `json:"startedAt"`
	EndedAt           *time.Time `json:"endedAt"`
	SolvedProblems    int        `json:"solvedProblems"`
	AttemptedProblems int        `json:"attemptedProblems"`
}

// File is the on-disk save document.
type File struct {
	SchemaVersion          string         `json:"schemaVersion"`
	PlayerName             string         `json:"playerName"`
	TotalProblemsSolved    int            `json:"totalProblemsSolved"`
	TotalProblemsAttempted int            `json:"totalProblemsAttempted"`
	CurrentDifficultyLevel int            `json:"currentDifficultyLevel"`
	SessionsPlayed         int            `json:"sessionsPlayed"`
	UnlockedRewards        []RewardEntry  `json:"unlockedRewards"`
	SessionHistory         []SessionEntry `json:"sessionHistory"`
	UpdatedAt              time.Time      `json:"updatedAt"`
}

// NewFile returns a fresh save for a player who has never played.
func NewFile(playerName string) *File {
	return &File{
		SchemaVersion:          SchemaVersion,
		PlayerName:             playerName,
		CurrentDifficultyLevel: 1,
		UnlockedRewards:        []RewardEntry{},
		SessionHistory:         []SessionEntry{},
	}
}

// FileName derives the save file name from a player name: lowercased,
// internal whitespace collapsed to single hyphens, suffixed "-save.json".
func FileName(playerName string) string {
	name := strings.ToLower(strings.TrimSpace(playerName))
	name = strings.Join(strings.Fields(name), "-")
	if name == "" {
		name = "player"
	}
	return name + "-save.json"
}

// Manager loads and writes save files in a single directory.
type Manager struct {
	dir string
}

// NewManager creates a Manager rooted at dir. The directory is created on
// first write, not here.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Path returns the save file path for a player.
func (m *Manager) Path(playerName string) string {
	return filepath.Join(m.dir, FileName(playerName))
}

// Load reads and validates a player's save. A missing file is a new player,
// not an error.
func (m *Manager) Load(playerName string) (*File, error) {
	raw, err := os.ReadFile(m.Path(playerName))
	if errors.Is(err, os.ErrNotExist) {
		return NewFile(playerName), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}

	if err := validateSave(raw); err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}

	if err := checkSchemaVersion(f.SchemaVersion); err != nil {
		return nil, err
	}
	return &f, nil
}

// Write persists the save atomically, stamping UpdatedAt.
func (m *Manager) Write(f *File) error {
	f.SchemaVersion = SchemaVersion
	f.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp, err := os.CreateTemp(m.dir, ".save-*.json")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp save: %w", err)
	}

	if err := os.Rename(tmpName, m.Path(f.PlayerName)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename save: %w", err)
	}
	return nil
}

// checkSchemaVersion accepts any version with the same major as ours.
func checkSchemaVersion(version string) error {
	if !semver.IsValid("v" + version) {
		return fmt.Errorf("save schema version %q is not a valid semver", version)
	}
	if semver.Major("v"+version) != semver.Major("v"+SchemaVersion) {
		return fmt.Errorf("save schema version %s is incompatible with %s", version, SchemaVersion)
	}
	return nil
}
