package mastery

import (
	"math"
	"time"

	"github.com/abhisek/brainbuilder/internal/state"
	"github.com/abhisek/brainbuilder/internal/streak"
)

const (
	// RecentWindow is how many trailing sessions feed the score.
	RecentWindow = 10

	// RecencyDecayPerDay is the recency points lost per day without practice.
	RecencyDecayPerDay = 10

	weightScore      = 0.5
	weightConfidence = 0.25
	weightRecency    = 0.25
)

// Compute returns a 0-100 mastery score for topicID.
//
// The last RecentWindow sessions in log order are averaged, so the log must
// be kept oldest first (state.AppState.RecordSession does this).
func Compute(progress map[string]*state.TopicProgress, topicID string, now time.Time) int {
	sessions := state.SessionsOf(progress, topicID)
	if len(sessions) == 0 {
		return 0
	}

	recent := sessions
	if len(recent) > RecentWindow {
		recent = recent[len(recent)-RecentWindow:]
	}

	var scoreSum, confSum float64
	for _, s := range recent {
		scoreSum += float64(s.ScorePct)
		confSum += ConfidencePct(s.Confidence)
	}
	n := float64(len(recent))
	avgScore := scoreSum / n
	avgConfidence := confSum / n

	last := sessions[len(sessions)-1].Date
	recency := 0.0
	if days, ok := daysBetween(last, streak.Today(now)); ok {
		recency = math.Max(0, 100-float64(days*RecencyDecayPerDay))
	}

	m := roundHalfUp(weightScore*avgScore + weightConfidence*avgConfidence + weightRecency*recency)
	return clamp(m, 0, 100)
}

// ConfidencePct maps a 1-5 confidence rating linearly onto 0-100.
func ConfidencePct(confidence int) float64 {
	return float64(confidence-1) / 4 * 100
}

// daysBetween returns the absolute number of calendar days between two
// YYYY-MM-DD dates.
func daysBetween(a, b string) (int, bool) {
	ta, err := time.Parse(streak.DateLayout, a)
	if err != nil {
		return 0, false
	}
	tb, err := time.Parse(streak.DateLayout, b)
	if err != nil {
		return 0, false
	}
	days := roundHalfUp(tb.Sub(ta).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days, true
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
