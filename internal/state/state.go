package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTopicNotFound = errors.New("topic not found")
	ErrEmptyName     = errors.New("topic name is required")
	ErrEmptyCard     = errors.New("card front and back are required")
)

// Default returns a fresh, empty state.
func Default() *AppState {
	return &AppState{
		Version:  Version,
		Topics:   []*Topic{},
		Progress: map[string]*TopicProgress{},
	}
}

// FindTopic returns the topic with the given id, or nil.
func (s *AppState) FindTopic(id string) *Topic {
	for _, t := range s.Topics {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// AddTopic appends a new topic. An empty color picks the next palette entry.
func (s *AppState) AddTopic(name, color string) (*Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if color == "" {
		color = TopicColors[len(s.Topics)%len(TopicColors)]
	}
	t := &Topic{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
		Cards: []Card{},
	}
	s.Topics = append(s.Topics, t)
	return t, nil
}

// RemoveTopic deletes a topic. Its progress is kept as orphan history.
func (s *AppState) RemoveTopic(id string) error {
	for i, t := range s.Topics {
		if t.ID == id {
			s.Topics = append(s.Topics[:i], s.Topics[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTopicNotFound, id)
}

// AddCard appends a card to a topic's pool.
func (s *AppState) AddCard(topicID, front, back string) (Card, error) {
	t := s.FindTopic(topicID)
	if t == nil {
		return Card{}, fmt.Errorf("%w: %s", ErrTopicNotFound, topicID)
	}
	front, back = strings.TrimSpace(front), strings.TrimSpace(back)
	if front == "" || back == "" {
		return Card{}, ErrEmptyCard
	}
	c := Card{ID: uuid.NewString(), Front: front, Back: back}
	t.Cards = append(t.Cards, c)
	return c, nil
}

// Sessions returns the session log for a topic, or nil.
func (s *AppState) Sessions(topicID string) []SessionRecord {
	return SessionsOf(s.Progress, topicID)
}

// SessionsOf returns the session log for a topic in progress, or nil.
func SessionsOf(progress map[string]*TopicProgress, topicID string) []SessionRecord {
	tp := progress[topicID]
	if tp == nil {
		return nil
	}
	return tp.Sessions
}

// RecordSession adds rec to the topic's log after every session dated on or
// before rec.Date, so the tail of the log is always the most recent session.
func (s *AppState) RecordSession(topicID string, rec SessionRecord) {
	if s.Progress == nil {
		s.Progress = map[string]*TopicProgress{}
	}
	tp := s.Progress[topicID]
	if tp == nil {
		tp = &TopicProgress{}
		s.Progress[topicID] = tp
	}
	i := len(tp.Sessions)
	for i > 0 && tp.Sessions[i-1].Date > rec.Date {
		i--
	}
	tp.Sessions = append(tp.Sessions, SessionRecord{})
	copy(tp.Sessions[i+1:], tp.Sessions[i:])
	tp.Sessions[i] = rec
}

// Clone returns a deep copy of s.
func (s *AppState) Clone() *AppState {
	out := &AppState{
		Version:  s.Version,
		Topics:   make([]*Topic, 0, len(s.Topics)),
		Progress: make(map[string]*TopicProgress, len(s.Progress)),
	}
	for _, t := range s.Topics {
		if t == nil {
			continue
		}
		c := *t
		c.Cards = append([]Card{}, t.Cards...)
		out.Topics = append(out.Topics, &c)
	}
	for id, tp := range s.Progress {
		if tp == nil {
			continue
		}
		out.Progress[id] = &TopicProgress{Sessions: append([]SessionRecord{}, tp.Sessions...)}
	}
	return out
}
