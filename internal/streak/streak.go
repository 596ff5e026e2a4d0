// Package streak derives consecutive-day streaks from the session log.
//
// All functions are pure: the caller passes the current instant, and
// calendar days are taken in that instant's location.
package streak

import (
	"sort"
	"time"

	"github.com/abhisek/brainbuilder/internal/state"
)

// DateLayout is the calendar-day format used by session records.
const DateLayout = "2006-01-02"

// Today returns now's calendar date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// DaysAgo returns the calendar date n days before now. DaysAgo(now, 0) is Today(now).
func DaysAgo(now time.Time, n int) string {
	return now.AddDate(0, 0, -n).Format(DateLayout)
}

// SessionDatesDesc returns the unique dates on which topicID has a session,
// newest first.
func SessionDatesDesc(progress map[string]*state.TopicProgress, topicID string) []string {
	seen := make(map[string]bool)
	for _, s := range state.SessionsOf(progress, topicID) {
		seen[s.Date] = true
	}
	return sortedDesc(seen)
}

func sortedDesc(set map[string]bool) []string {
	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// ComputeStreak counts consecutive days ending today, or yesterday when
// today has no session yet. datesDesc must be unique and sorted newest first;
// a most recent date other than today or yesterday means no streak.
func ComputeStreak(datesDesc []string, now time.Time) int {
	if len(datesDesc) == 0 {
		return 0
	}
	if latest := datesDesc[0]; latest != Today(now) && latest != DaysAgo(now, 1) {
		return 0
	}
	set := make(map[string]bool, len(datesDesc))
	for _, d := range datesDesc {
		set[d] = true
	}
	return countRun(now, func(date string) bool { return set[date] })
}

// countRun walks back from today (or yesterday, if today misses) and counts
// the days hit reports true for, stopping at the first miss.
func countRun(now time.Time, hit func(date string) bool) int {
	var offset int
	switch {
	case hit(Today(now)):
		offset = 0
	case hit(DaysAgo(now, 1)):
		offset = 1
	default:
		return 0
	}

	streak := 0
	for i := offset; hit(DaysAgo(now, i)); i++ {
		streak++
	}
	return streak
}

// TopicStreak is the streak of days on which topicID was practiced.
func TopicStreak(progress map[string]*state.TopicProgress, topicID string, now time.Time) int {
	return ComputeStreak(SessionDatesDesc(progress, topicID), now)
}

// GlobalStreak is the streak of days on which any topic was practiced,
// including topics that have since been removed.
func GlobalStreak(progress map[string]*state.TopicProgress, now time.Time) int {
	seen := make(map[string]bool)
	for _, tp := range progress {
		if tp == nil {
			continue
		}
		for _, s := range tp.Sessions {
			seen[s.Date] = true
		}
	}
	return ComputeStreak(sortedDesc(seen), now)
}

// TopicDoneOnDate reports whether topicID has a session on date.
func TopicDoneOnDate(progress map[string]*state.TopicProgress, topicID, date string) bool {
	for _, s := range state.SessionsOf(progress, topicID) {
		if s.Date == date {
			return true
		}
	}
	return false
}

// TopicDoneToday reports whether topicID has a session today.
func TopicDoneToday(progress map[string]*state.TopicProgress, topicID string, now time.Time) bool {
	return TopicDoneOnDate(progress, topicID, Today(now))
}

// DayProgress counts topics practiced today.
type DayProgress struct {
	Done  int
	Total int
}

// TodayProgress counts how many of topics have a session today.
func TodayProgress(topics []*state.Topic, progress map[string]*state.TopicProgress, now time.Time) DayProgress {
	p := DayProgress{Total: len(topics)}
	for _, t := range topics {
		if TopicDoneToday(progress, t.ID, now) {
			p.Done++
		}
	}
	return p
}

// IsPerfectDay reports whether every topic has a session on date.
// A day is never perfect when there are no topics.
func IsPerfectDay(topics []*state.Topic, progress map[string]*state.TopicProgress, date string) bool {
	if len(topics) == 0 {
		return false
	}
	for _, t := range topics {
		if !TopicDoneOnDate(progress, t.ID, date) {
			return false
		}
	}
	return true
}

// PerfectDayStreak counts consecutive perfect days the same way ComputeStreak
// counts practiced days.
func PerfectDayStreak(topics []*state.Topic, progress map[string]*state.TopicProgress, now time.Time) int {
	if len(topics) == 0 {
		return 0
	}
	return countRun(now, func(date string) bool {
		return IsPerfectDay(topics, progress, date)
	})
}
