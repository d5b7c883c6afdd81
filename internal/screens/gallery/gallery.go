// Package gallery shows the collectibles a player has earned so far.
package gallery

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/divvy/internal/artcache"
	"github.com/abhisek/divvy/internal/rewards"
	"github.com/abhisek/divvy/internal/screen"
	"github.com/abhisek/divvy/internal/ui/layout"
	"github.com/abhisek/divvy/internal/ui/theme"
)

// RewardLister returns the unlocked rewards in milestone order. Satisfied by
// the orchestrator; kept narrow so the screen is testable without one.
type RewardLister func() []rewards.UnlockedReward

// GalleryScreen displays the unlocked collectible cards and their artwork
// status.
type GalleryScreen struct {
	list         RewardLister
	cache        *artcache.Cache
	items        []rewards.UnlockedReward
	scrollOffset int
}

var _ screen.Screen = (*GalleryScreen)(nil)
var _ screen.KeyHintProvider = (*GalleryScreen)(nil)

// New creates a GalleryScreen. cache may be nil; artwork status then shows as
// the stored path only.
func New(list RewardLister, cache *artcache.Cache) *GalleryScreen {
	return &GalleryScreen{list: list, cache: cache}
}

func (s *GalleryScreen) Init() tea.Cmd {
	s.items = s.list()
	return nil
}

func (s *GalleryScreen) Title() string {
	return "My Collection"
}

func (s *GalleryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GalleryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.items)-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *GalleryScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\n%d collectibles earned\n", len(s.items))))
	b.WriteString("\n")

	if len(s.items) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("Solve problems to earn your first animal friend!"))
		return b.String()
	}

	maxVisible := height - 8
	if maxVisible < 3 {
		maxVisible = 3
	}
	start := s.scrollOffset
	end := start + maxVisible
	if end > len(s.items) {
		end = len(s.items)
	}

	for i := start; i < end; i++ {
		r := s.items[i]
		line := fmt.Sprintf("  %-16s %-10s earned at %d solved  %s",
			r.SubjectName,
			s.artStatus(r.SubjectName),
			r.MilestoneSolvedCount,
			r.EarnedAt.Format("Jan 02, 2006"),
		)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	if end < len(s.items) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(s.items)-end)))
	}

	return b.String()
}

func (s *GalleryScreen) artStatus(subject string) string {
	if s.cache == nil {
		return ""
	}
	report := s.cache.Status(subject)
	switch report.Status {
	case artcache.StatusReady:
		return "art ready"
	case artcache.StatusGenerating:
		return "painting..."
	default:
		return "no art yet"
	}
}
