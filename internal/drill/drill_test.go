package drill

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/brainbuilder/internal/state"
)

func makeCards(n int) []state.Card {
	cards := make([]state.Card, n)
	for i := range cards {
		cards[i] = state.Card{ID: fmt.Sprintf("c%d", i), Front: fmt.Sprintf("q%d", i), Back: fmt.Sprintf("a%d", i)}
	}
	return cards
}

func seeded() Option {
	return WithRand(rand.New(rand.NewPCG(1, 2)))
}

// fakeClock returns a clock and a function advancing it.
func fakeClock(start time.Time) (func() time.Time, func(time.Duration)) {
	t := start
	return func() time.Time { return t }, func(d time.Duration) { t = t.Add(d) }
}

func TestNewCapsAtMaxCards(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{15, 10},
		{10, 10},
		{3, 3},
		{0, 0},
	}
	for _, tt := range tests {
		s := New(makeCards(tt.n), seeded())
		assert.Equal(t, tt.want, s.Total(), "cards=%d", tt.n)
		assert.Equal(t, 0, s.Current())
		assert.Equal(t, 0, s.Correct())
		assert.False(t, s.Revealed())
	}
}

func TestNewSelectsDistinctCardsFromPool(t *testing.T) {
	pool := makeCards(15)
	s := New(pool, seeded())

	ids := map[string]bool{}
	for _, c := range s.Cards() {
		ids[c.ID] = true
	}
	assert.Len(t, ids, MaxCards)
	assert.Equal(t, "c0", pool[0].ID, "input must not be reordered")
}

func TestShufflePermutes(t *testing.T) {
	pool := makeCards(8)
	got := Shuffle(pool, rand.New(rand.NewPCG(7, 7)))
	require.Len(t, got, len(pool))
	assert.ElementsMatch(t, pool, got)
	assert.Empty(t, Shuffle(nil, rand.New(rand.NewPCG(1, 1))))
}

func TestShuffleCoversAllPositions(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 99))
	first := map[string]bool{}
	for i := 0; i < 200; i++ {
		first[Shuffle(makeCards(3), r)[0].ID] = true
	}
	assert.Len(t, first, 3)
}

func TestEmptyDrill(t *testing.T) {
	s := New(nil)
	assert.True(t, s.Finished())
	assert.Equal(t, 0, s.ScorePct())
	_, ok := s.CurrentCard()
	assert.False(t, ok)

	s.Answer(true)
	assert.Equal(t, 0, s.Correct())
	assert.Equal(t, 0, s.Current())
}

func TestRevealAndAnswerTransitions(t *testing.T) {
	s := New(makeCards(2), seeded())
	first, ok := s.CurrentCard()
	require.True(t, ok)

	s.Reveal()
	assert.True(t, s.Revealed())
	assert.Equal(t, 0, s.Current())

	s.Answer(true)
	assert.False(t, s.Revealed())
	assert.Equal(t, 1, s.Current())
	assert.False(t, s.Finished())

	second, ok := s.CurrentCard()
	require.True(t, ok)
	assert.NotEqual(t, first.ID, second.ID)

	s.Answer(false)
	assert.True(t, s.Finished())
	assert.Equal(t, 2, s.Current())
	assert.Equal(t, 1, s.Correct())
	_, ok = s.CurrentCard()
	assert.False(t, ok)
}

func TestFinishedIsTerminal(t *testing.T) {
	s := New(makeCards(1), seeded())
	s.Answer(true)
	require.True(t, s.Finished())

	s.Reveal()
	assert.False(t, s.Revealed())
	s.Answer(true)
	assert.Equal(t, 1, s.Current())
	assert.Equal(t, 1, s.Correct())
}

func TestScorePct(t *testing.T) {
	tests := []struct {
		name    string
		cards   int
		answers []bool
		want    int
	}{
		{"all correct", 10, []bool{true, true, true, true, true, true, true, true, true, true}, 100},
		{"none correct", 4, []bool{false, false, false, false}, 0},
		{"two of three", 3, []bool{true, false, true}, 67},
		{"one of three", 3, []bool{false, true, false}, 33},
		{"half rounds up", 8, []bool{true, true, true, true, false, false, false, false}, 50},
		{"partial run", 4, []bool{true}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(makeCards(tt.cards), seeded())
			for _, a := range tt.answers {
				s.Answer(a)
			}
			assert.Equal(t, tt.want, s.ScorePct())
		})
	}
}

func TestFullRunAllCorrect(t *testing.T) {
	s := New(makeCards(15), seeded())
	for i := 0; i < s.Total(); i++ {
		s.Answer(true)
	}
	assert.True(t, s.Finished())
	assert.Equal(t, s.Total(), s.Correct())
	assert.Equal(t, 100, s.ScorePct())
}

func TestDurationAndRecord(t *testing.T) {
	clock, advance := fakeClock(time.Date(2024, 1, 5, 23, 58, 0, 0, time.UTC))
	s := New(makeCards(4), seeded(), WithClock(clock))

	s.Answer(true)
	s.Answer(true)
	s.Answer(false)
	s.Answer(true)
	advance(95*time.Second + 400*time.Millisecond)

	assert.Equal(t, 95, s.DurationSec())
	assert.Equal(t, "1:35", s.DurationFormatted())

	rec := s.Record(9)
	assert.Equal(t, state.SessionRecord{
		Date:        "2024-01-05",
		ScorePct:    75,
		Confidence:  5,
		Correct:     3,
		Total:       4,
		DurationSec: 95,
	}, rec)

	advance(2 * time.Minute)
	rec = s.Record(0)
	assert.Equal(t, "2024-01-06", rec.Date, "record is dated at completion")
	assert.Equal(t, 1, rec.Confidence)
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		sec  int
		want string
	}{
		{0, "0:00"},
		{9, "0:09"},
		{60, "1:00"},
		{125, "2:05"},
		{3600, "60:00"},
		{-4, "0:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.sec))
	}
}
