// Package home is the landing screen: stats at a glance plus the main menu.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/divvy/internal/artcache"
	"github.com/abhisek/divvy/internal/game"
	"github.com/abhisek/divvy/internal/rewards"
	"github.com/abhisek/divvy/internal/router"
	"github.com/abhisek/divvy/internal/screen"
	"github.com/abhisek/divvy/internal/screens/gallery"
	playscreen "github.com/abhisek/divvy/internal/screens/play"
	"github.com/abhisek/divvy/internal/ui/components"
	"github.com/abhisek/divvy/internal/ui/theme"
)

// HomeScreen is the main screen of the application.
type HomeScreen struct {
	menu  components.Menu
	orch  *game.Orchestrator
	state *game.GameState
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen wired to the game loop and reward pipeline.
func New(orch *game.Orchestrator, state *game.GameState, cache *artcache.Cache, events <-chan playscreen.RewardEvent) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START PRACTICE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: playscreen.New(orch, state, events),
				}
			}
		}},
		{Label: "MY COLLECTION", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: gallery.New(func() []rewards.UnlockedReward {
						return orch.Rewards(state)
					}, cache),
				}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:  components.NewMenu(items),
		orch:  orch,
		state: state,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) View(width, height int) string {
	// The reward worker bumps RewardsUnlocked off this goroutine; read
	// through the orchestrator's guarded snapshot.
	lifetime := h.orch.Stats(h.state)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("D I V V Y"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Long division, one step at a time"))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Solved %d   Level %d   Collectibles %d",
		lifetime.TotalProblemsSolved,
		lifetime.CurrentDifficultyLevel,
		lifetime.RewardsUnlocked,
	)
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(stats))
	b.WriteString("\n\n")

	into := lifetime.TotalProblemsSolved % rewards.Interval
	bar := components.NewProgressBar(
		"Next reward",
		float64(into)/float64(rewards.Interval),
		false,
		min(width-8, 40),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
