package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/brainbuilder/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type refreshMsg struct{}

func TestPushPop(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)

	s2 := &stubScreen{title: "drill"}
	r.Push(s2)
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "drill", r.Active().Title())
	assert.True(t, s2.initRan)

	r.Pop()
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "home", r.Active().Title())

	r.Pop()
	assert.Equal(t, 1, r.Depth(), "the bottom screen is never popped")
}

func TestUpdateGoesToActiveOnly(t *testing.T) {
	s1, s2 := &stubScreen{title: "home"}, &stubScreen{title: "drill"}
	r := New(s1)
	r.Push(s2)

	r.Update(refreshMsg{})
	assert.Empty(t, s1.got)
	require.Len(t, s2.got, 1)
}

func TestBroadcastReachesWholeStack(t *testing.T) {
	s1, s2 := &stubScreen{title: "home"}, &stubScreen{title: "drill"}
	r := New(s1)
	r.Push(s2)

	r.Broadcast(refreshMsg{})
	assert.Len(t, s1.got, 1)
	assert.Len(t, s2.got, 1)
	assert.Equal(t, "drill", r.View(80, 24))
}
