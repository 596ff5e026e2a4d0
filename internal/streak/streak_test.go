package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/brainbuilder/internal/state"
)

var now = time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC)

func progressOf(dates map[string][]string) map[string]*state.TopicProgress {
	p := make(map[string]*state.TopicProgress)
	for id, ds := range dates {
		tp := &state.TopicProgress{}
		for _, d := range ds {
			tp.Sessions = append(tp.Sessions, state.SessionRecord{Date: d, ScorePct: 100, Confidence: 5})
		}
		p[id] = tp
	}
	return p
}

func topics(ids ...string) []*state.Topic {
	out := make([]*state.Topic, 0, len(ids))
	for _, id := range ids {
		out = append(out, &state.Topic{ID: id, Name: id})
	}
	return out
}

func TestTodayAndDaysAgo(t *testing.T) {
	assert.Equal(t, "2024-01-05", Today(now))
	assert.Equal(t, "2024-01-05", DaysAgo(now, 0))
	assert.Equal(t, "2024-01-04", DaysAgo(now, 1))
	assert.Equal(t, "2023-12-31", DaysAgo(now, 5))

	leap := time.Date(2024, 3, 1, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-29", DaysAgo(leap, 1))
}

func TestTodayUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	late := time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-06", Today(late.In(tokyo)))
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"three days ending today", []string{"2024-01-05", "2024-01-04", "2024-01-03"}, 3},
		{"gap after today", []string{"2024-01-05", "2024-01-03"}, 1},
		{"ending yesterday", []string{"2024-01-04", "2024-01-03"}, 2},
		{"only today", []string{"2024-01-05"}, 1},
		{"broken: two days ago", []string{"2024-01-03", "2024-01-02"}, 0},
		{"across month boundary", []string{"2024-01-05", "2024-01-04", "2024-01-03", "2024-01-02", "2024-01-01", "2023-12-31"}, 6},
		{"future date first", []string{"2024-02-01", "2024-01-05"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(tt.dates, now))
		})
	}
}

func TestComputeStreakAtLeastOneWhenTodayPresent(t *testing.T) {
	for _, dates := range [][]string{
		{"2024-01-05"},
		{"2024-01-05", "2023-06-01"},
		{"2024-01-05", "2024-01-04", "2023-01-01"},
	} {
		assert.GreaterOrEqual(t, ComputeStreak(dates, now), 1, dates)
	}
}

func TestSessionDatesDesc(t *testing.T) {
	p := progressOf(map[string][]string{
		"a": {"2024-01-03", "2024-01-05", "2024-01-03", "2024-01-04"},
	})
	assert.Equal(t, []string{"2024-01-05", "2024-01-04", "2024-01-03"}, SessionDatesDesc(p, "a"))
	assert.Empty(t, SessionDatesDesc(p, "missing"))
}

func TestTopicStreakDedupesUnsorted(t *testing.T) {
	p := progressOf(map[string][]string{
		"a": {"2024-01-04", "2024-01-05", "2024-01-04", "2024-01-03"},
	})
	assert.Equal(t, 3, TopicStreak(p, "a", now))
	assert.Equal(t, 0, TopicStreak(p, "b", now))
}

func TestGlobalStreak(t *testing.T) {
	p := progressOf(map[string][]string{
		"a":      {"2024-01-05"},
		"b":      {"2024-01-04"},
		"orphan": {"2024-01-03"},
	})
	p["nil"] = nil
	assert.Equal(t, 3, GlobalStreak(p, now))
	assert.Equal(t, 0, GlobalStreak(nil, now))
}

func TestTopicDone(t *testing.T) {
	p := progressOf(map[string][]string{"a": {"2024-01-05"}, "b": {"2024-01-04"}})
	assert.True(t, TopicDoneOnDate(p, "b", "2024-01-04"))
	assert.False(t, TopicDoneOnDate(p, "b", "2024-01-05"))
	assert.True(t, TopicDoneToday(p, "a", now))
	assert.False(t, TopicDoneToday(p, "b", now))
}

func TestTodayProgress(t *testing.T) {
	p := progressOf(map[string][]string{"a": {"2024-01-05"}, "b": {"2024-01-04"}})
	assert.Equal(t, DayProgress{Done: 1, Total: 3}, TodayProgress(topics("a", "b", "c"), p, now))
	assert.Equal(t, DayProgress{}, TodayProgress(nil, p, now))
}

func TestIsPerfectDay(t *testing.T) {
	p := progressOf(map[string][]string{
		"a": {"2024-01-05", "2024-01-04"},
		"b": {"2024-01-05"},
	})
	assert.True(t, IsPerfectDay(topics("a", "b"), p, "2024-01-05"))
	assert.False(t, IsPerfectDay(topics("a", "b"), p, "2024-01-04"))
	assert.False(t, IsPerfectDay(nil, p, "2024-01-05"))
	assert.False(t, IsPerfectDay([]*state.Topic{}, p, "2024-01-04"))
}

func TestPerfectDayStreak(t *testing.T) {
	tests := []struct {
		name   string
		topics []*state.Topic
		dates  map[string][]string
		want   int
	}{
		{"no topics", nil, map[string][]string{"a": {"2024-01-05"}}, 0},
		{"all done three days", topics("a", "b"), map[string][]string{
			"a": {"2024-01-05", "2024-01-04", "2024-01-03"},
			"b": {"2024-01-03", "2024-01-04", "2024-01-05"},
		}, 3},
		{"today partial, yesterday perfect", topics("a", "b"), map[string][]string{
			"a": {"2024-01-05", "2024-01-04", "2024-01-03"},
			"b": {"2024-01-04", "2024-01-03"},
		}, 2},
		{"neither today nor yesterday", topics("a"), map[string][]string{
			"a": {"2024-01-03"},
		}, 0},
		{"new topic breaks history", topics("a", "b"), map[string][]string{
			"a": {"2024-01-05", "2024-01-04"},
			"b": {"2024-01-05"},
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PerfectDayStreak(tt.topics, progressOf(tt.dates), now))
		})
	}
}
