package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/divvy/internal/ui/layout"
)

// Screen is one full-terminal view (home, practice, gallery). The router
// owns the stack; screens never render the surrounding frame.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content for the frame's content area.
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
