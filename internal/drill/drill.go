// Package drill runs a single flashcard sprint over a shuffled subset of a
// topic's cards.
package drill

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/brainbuilder/internal/state"
	"github.com/abhisek/brainbuilder/internal/streak"
)

// MaxCards is the most cards a single drill asks.
const MaxCards = 10

// Rand is the random source used for shuffling. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Option configures a Session.
type Option func(*Session)

// WithRand sets the shuffle source.
func WithRand(r Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithClock sets the clock used for timing and for dating the record.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is an in-progress drill. It moves from active to finished and
// never back; once finished, Reveal and Answer do nothing.
type Session struct {
	cards     []state.Card
	current   int
	correct   int
	revealed  bool
	finished  bool
	startTime time.Time

	rng Rand
	now func() time.Time
}

// New shuffles cards and keeps at most MaxCards of them. An empty pool gives
// a zero-length session that is already finished and scores 0.
func New(cards []state.Card, opts ...Option) *Session {
	s := &Session{
		rng: globalRand{},
		now: time.Now,
	}
	for _, o := range opts {
		o(s)
	}

	shuffled := Shuffle(cards, s.rng)
	if len(shuffled) > MaxCards {
		shuffled = shuffled[:MaxCards]
	}
	s.cards = shuffled
	s.finished = len(shuffled) == 0
	s.startTime = s.now()
	return s
}

// Shuffle returns a uniformly random permutation of cards (Fisher-Yates),
// leaving the input untouched.
func Shuffle(cards []state.Card, r Rand) []state.Card {
	out := append([]state.Card(nil), cards...)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Cards returns the cards selected for this drill, in asking order.
func (s *Session) Cards() []state.Card { return s.cards }

// Total is the number of cards in the drill.
func (s *Session) Total() int { return len(s.cards) }

// Current is the index of the card being asked.
func (s *Session) Current() int { return s.current }

// Correct is the number of cards answered correctly so far.
func (s *Session) Correct() int { return s.correct }

// Revealed reports whether the current card's answer is showing.
func (s *Session) Revealed() bool { return s.revealed }

// Finished reports whether every card has been answered.
func (s *Session) Finished() bool { return s.finished }

// StartTime is when the drill was created.
func (s *Session) StartTime() time.Time { return s.startTime }

// CurrentCard returns the card being asked; ok is false once past the end.
func (s *Session) CurrentCard() (card state.Card, ok bool) {
	if s.current < 0 || s.current >= len(s.cards) {
		return state.Card{}, false
	}
	return s.cards[s.current], true
}

// Reveal shows the current card's answer.
func (s *Session) Reveal() {
	if s.finished {
		return
	}
	s.revealed = true
}

// Answer records the self-graded result for the current card and moves on.
func (s *Session) Answer(gotIt bool) {
	if s.finished || s.current >= len(s.cards) {
		return
	}
	if gotIt {
		s.correct++
	}
	s.current++
	s.revealed = false
	if s.current == len(s.cards) {
		s.finished = true
	}
}

// ScorePct is the rounded share of correct answers, 0 for an empty drill.
func (s *Session) ScorePct() int {
	if len(s.cards) == 0 {
		return 0
	}
	return int(math.Floor(float64(s.correct)/float64(len(s.cards))*100 + 0.5))
}

// DurationSec is the elapsed wall time in whole seconds.
func (s *Session) DurationSec() int {
	return int(math.Floor(s.now().Sub(s.startTime).Seconds() + 0.5))
}

// DurationFormatted is DurationSec as M:SS.
func (s *Session) DurationFormatted() string {
	return FormatTime(s.DurationSec())
}

// Record folds the drill result into a session record dated today.
// confidence is clamped to 1-5.
func (s *Session) Record(confidence int) state.SessionRecord {
	return state.SessionRecord{
		Date:        streak.Today(s.now()),
		ScorePct:    s.ScorePct(),
		Confidence:  min(max(confidence, 1), 5),
		Correct:     s.correct,
		Total:       len(s.cards),
		DurationSec: s.DurationSec(),
	}
}

// FormatTime renders seconds as M:SS.
func FormatTime(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
