// Package drill is the interactive flashcard drill screen.
package drill

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	sess "github.com/abhisek/brainbuilder/internal/drill"
	"github.com/abhisek/brainbuilder/internal/router"
	"github.com/abhisek/brainbuilder/internal/screen"
	"github.com/abhisek/brainbuilder/internal/state"
	"github.com/abhisek/brainbuilder/internal/ui/layout"
)

// Recorder stores a finished drill.
type Recorder interface {
	RecordSession(topicID string, rec state.SessionRecord) error
}

// RecordedMsg is emitted once a finished drill has been handed to the
// Recorder.
type RecordedMsg struct {
	TopicID string
	Record  state.SessionRecord
	Err     error
}

type phase int

const (
	phaseCards phase = iota
	phaseConfidence
	phaseSummary
	phaseEmpty
)

// DrillScreen walks through up to sess.MaxCards cards of one topic, asks
// for a confidence rating and records the result.
type DrillScreen struct {
	topic    *state.Topic
	session  *sess.Session
	recorder Recorder
	keys     keyMap
	phase    phase
	record   state.SessionRecord
	err      error
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)

// New starts a drill over topic's cards. opts are passed to the session.
func New(topic *state.Topic, recorder Recorder, opts ...sess.Option) *DrillScreen {
	s := &DrillScreen{
		topic:    topic,
		session:  sess.New(topic.Cards, opts...),
		recorder: recorder,
		keys:     defaultKeys(),
	}
	if s.session.Total() == 0 {
		s.phase = phaseEmpty
	}
	return s
}

func (s *DrillScreen) Init() tea.Cmd {
	return nil
}

func (s *DrillScreen) Title() string {
	return "Drill: " + s.topic.Name
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseCards:
		if s.session.Revealed() {
			return hints(s.keys.GotIt, s.keys.Missed, s.keys.Back)
		}
		return hints(s.keys.Reveal, s.keys.Back)
	case phaseConfidence:
		return hints(s.keys.Confidence, s.keys.Back)
	default:
		return hints(s.keys.Continue)
	}
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch s.phase {
	case phaseCards:
		return s.handleCardKey(kmsg)
	case phaseConfidence:
		return s.handleConfidenceKey(kmsg)
	default:
		if key.Matches(kmsg, s.keys.Continue) {
			return s, popScreen
		}
	}
	return s, nil
}

func (s *DrillScreen) handleCardKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if key.Matches(msg, s.keys.Back) {
		return s, popScreen
	}
	if !s.session.Revealed() {
		if key.Matches(msg, s.keys.Reveal) {
			s.session.Reveal()
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, s.keys.GotIt):
		s.session.Answer(true)
	case key.Matches(msg, s.keys.Missed):
		s.session.Answer(false)
	default:
		return s, nil
	}
	if s.session.Finished() {
		s.phase = phaseConfidence
	}
	return s, nil
}

func (s *DrillScreen) handleConfidenceKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if key.Matches(msg, s.keys.Back) {
		return s, popScreen
	}
	if !key.Matches(msg, s.keys.Confidence) {
		return s, nil
	}

	confidence := int(msg.String()[0] - '0')
	s.record = s.session.Record(confidence)
	s.err = s.recorder.RecordSession(s.topic.ID, s.record)
	s.phase = phaseSummary

	recorded := RecordedMsg{TopicID: s.topic.ID, Record: s.record, Err: s.err}
	return s, func() tea.Msg { return recorded }
}

func popScreen() tea.Msg {
	return router.PopScreenMsg{}
}
