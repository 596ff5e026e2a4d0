// Package home is the dashboard screen: streaks, today's progress and the
// topic list to start a drill from.
package home

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainbuilder/internal/router"
	"github.com/abhisek/brainbuilder/internal/screen"
	drillscreen "github.com/abhisek/brainbuilder/internal/screens/drill"
	"github.com/abhisek/brainbuilder/internal/state"
	"github.com/abhisek/brainbuilder/internal/ui/dashboard"
	"github.com/abhisek/brainbuilder/internal/ui/layout"
	"github.com/abhisek/brainbuilder/internal/ui/theme"
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Drill key.Binding
	Quit  key.Binding
}

// HomeScreen lists topics with their streak and mastery.
type HomeScreen struct {
	st       *state.AppState
	recorder drillscreen.Recorder
	selected int
	keys     keyMap
	now      func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. st may be nil until the first state arrives.
func New(st *state.AppState, recorder drillscreen.Recorder, now func() time.Time) *HomeScreen {
	if now == nil {
		now = time.Now
	}
	return &HomeScreen{
		st:       st,
		recorder: recorder,
		now:      now,
		keys: keyMap{
			Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Navigate")),
			Down:  key.NewBinding(key.WithKeys("down", "j")),
			Drill: key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "Drill")),
			Quit:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Quit")),
		},
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	var out []layout.KeyHint
	for _, b := range []key.Binding{h.keys.Up, h.keys.Drill, h.keys.Quit} {
		out = append(out, layout.KeyHint{Key: b.Help().Key, Description: b.Help().Desc})
	}
	return out
}

// Selected returns the highlighted topic, or nil.
func (h *HomeScreen) Selected() *state.Topic {
	if h.st == nil || h.selected >= len(h.st.Topics) {
		return nil
	}
	return h.st.Topics[h.selected]
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		h.setState(msg.State)
		return h, nil
	case tea.KeyPressMsg:
		return h.handleKey(msg)
	}
	return h, nil
}

func (h *HomeScreen) setState(st *state.AppState) {
	// Keep the same topic highlighted if it still exists.
	var id string
	if t := h.Selected(); t != nil {
		id = t.ID
	}
	h.st = st
	h.selected = 0
	for i, t := range st.Topics {
		if t.ID == id {
			h.selected = i
		}
	}
}

func (h *HomeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if key.Matches(msg, h.keys.Quit) {
		return h, tea.Quit
	}
	if h.st == nil || len(h.st.Topics) == 0 {
		return h, nil
	}

	switch {
	case key.Matches(msg, h.keys.Up):
		if h.selected > 0 {
			h.selected--
		}
	case key.Matches(msg, h.keys.Down):
		if h.selected < len(h.st.Topics)-1 {
			h.selected++
		}
	case key.Matches(msg, h.keys.Drill):
		topic := h.Selected()
		return h, func() tea.Msg {
			return router.PushScreenMsg{Screen: drillscreen.New(topic, h.recorder)}
		}
	}
	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	if h.st == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Hint.Render("Loading…"))
	}

	summary := dashboard.Build(h.st, h.now())
	rowWidth := min(width-4, 100)

	var b strings.Builder
	b.WriteString(dashboard.RenderHeadline(summary))
	b.WriteString("\n\n")
	if len(summary.Topics) == 0 {
		b.WriteString(theme.Hint.Render("No topics yet. Add one with `brainbuilder topic add <name>`."))
	}
	for i, row := range summary.Topics {
		b.WriteString(dashboard.RenderRow(row, rowWidth, i == h.selected))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.TrimRight(b.String(), "\n"))
}
