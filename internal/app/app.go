package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainbuilder/internal/persist"
	"github.com/abhisek/brainbuilder/internal/router"
	"github.com/abhisek/brainbuilder/internal/screen"
	drillscreen "github.com/abhisek/brainbuilder/internal/screens/drill"
	"github.com/abhisek/brainbuilder/internal/screens/home"
	"github.com/abhisek/brainbuilder/internal/state"
	"github.com/abhisek/brainbuilder/internal/streak"
	"github.com/abhisek/brainbuilder/internal/ui/layout"
)

// syncDoneMsg is sent once the remote fetch in InitState has finished.
type syncDoneMsg struct{}

// Store is what the app needs from the persistence layer.
type Store interface {
	drillscreen.Recorder
	State() *state.AppState
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router     *router.Router
	store      Store
	state      *state.AppState
	startTopic string
	syncing    bool
	dirty      bool
	now        func() time.Time
	width      int
	height     int
}

func newAppModel(store Store, startTopic string, syncing bool) AppModel {
	return AppModel{
		router:     router.New(home.New(nil, store, nil)),
		store:      store,
		startTopic: startTopic,
		syncing:    syncing,
		now:        time.Now,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case screen.StateMsg:
		first := m.state == nil
		m.state = msg.State
		cmd := m.router.Broadcast(msg)
		if first && m.startTopic != "" {
			if t := m.state.FindTopic(m.startTopic); t != nil {
				return m, tea.Batch(cmd, m.router.Push(drillscreen.New(t, m.store)))
			}
		}
		return m, cmd

	case syncDoneMsg:
		m.syncing = false
		return m, nil

	case drillscreen.RecordedMsg:
		if msg.Err == nil {
			m.dirty = true
		}
		st := m.store.State()
		m.state = st
		return m, m.router.Broadcast(screen.StateMsg{State: st})
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var globalStreak int
	if m.state != nil {
		globalStreak = streak.GlobalStreak(m.state.Progress, m.now())
	}
	header := layout.RenderHeader(title, globalStreak, m.syncing, m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Options configures Run.
type Options struct {
	// StartTopic opens a drill for this topic as soon as the state loads.
	StartTopic string

	// Remote reports whether the coordinator has a remote to sync with.
	Remote bool
}

// Run starts the Bubble Tea program. The state is loaded in the background
// through c.InitState; if a drill was recorded, the state is pushed to the
// remote right away on exit.
func Run(ctx context.Context, c *persist.Coordinator, opts Options) error {
	p := tea.NewProgram(newAppModel(c, opts.StartTopic, opts.Remote))

	go func() {
		c.InitState(ctx, func(st *state.AppState) {
			p.Send(screen.StateMsg{State: st})
		})
		p.Send(syncDoneMsg{})
	}()

	final, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	if m, ok := final.(AppModel); ok && m.dirty {
		c.SaveStateNow(c.State())
	}
	return nil
}
