// Package dashboard summarizes streaks, mastery and today's progress.
package dashboard

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainbuilder/internal/mastery"
	"github.com/abhisek/brainbuilder/internal/state"
	"github.com/abhisek/brainbuilder/internal/streak"
	"github.com/abhisek/brainbuilder/internal/ui/components"
	"github.com/abhisek/brainbuilder/internal/ui/theme"
)

// TopicRow is the per-topic line of the dashboard.
type TopicRow struct {
	ID        string
	Name      string
	Color     string
	Cards     int
	Streak    int
	Mastery   int
	Level     mastery.Level
	DoneToday bool
	LastScore int
	Sessions  int
}

// Summary is everything the dashboard shows, computed at one instant.
type Summary struct {
	Date          string
	Today         streak.DayProgress
	GlobalStreak  int
	PerfectStreak int
	Topics        []TopicRow
}

// Build computes the summary of st as of now.
func Build(st *state.AppState, now time.Time) Summary {
	s := Summary{
		Date:          streak.Today(now),
		Today:         streak.TodayProgress(st.Topics, st.Progress, now),
		GlobalStreak:  streak.GlobalStreak(st.Progress, now),
		PerfectStreak: streak.PerfectDayStreak(st.Topics, st.Progress, now),
	}
	for _, t := range st.Topics {
		sessions := st.Sessions(t.ID)
		pct := mastery.Compute(st.Progress, t.ID, now)
		row := TopicRow{
			ID:        t.ID,
			Name:      t.Name,
			Color:     t.Color,
			Cards:     len(t.Cards),
			Streak:    streak.TopicStreak(st.Progress, t.ID, now),
			Mastery:   pct,
			Level:     mastery.LevelFor(pct),
			DoneToday: streak.TopicDoneToday(st.Progress, t.ID, now),
			Sessions:  len(sessions),
		}
		if n := len(sessions); n > 0 {
			row.LastScore = sessions[n-1].ScorePct
		}
		s.Topics = append(s.Topics, row)
	}
	return s
}

// Render draws the whole dashboard for a non-interactive terminal.
func Render(s Summary, width int) string {
	var b strings.Builder
	b.WriteString(RenderHeadline(s))
	b.WriteString("\n\n")
	if len(s.Topics) == 0 {
		b.WriteString(theme.Hint.Render("No topics yet. Add one with `brainbuilder topic add <name>`."))
		return b.String()
	}
	for _, row := range s.Topics {
		b.WriteString(RenderRow(row, width, false))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderHeadline is the streak and today line.
func RenderHeadline(s Summary) string {
	parts := []string{
		theme.Title.Render("Brain Builder") + theme.Hint.Render("  "+s.Date),
		theme.Streak.Render(fmt.Sprintf("🔥 %s", plural(s.GlobalStreak, "day"))) +
			theme.Hint.Render(" streak"),
		theme.Streak.Render(fmt.Sprintf("⭐ %s", plural(s.PerfectStreak, "perfect day"))),
		theme.Body.Render(fmt.Sprintf("Today %d/%d", s.Today.Done, s.Today.Total)),
	}
	return strings.Join(parts, theme.Hint.Render("  ·  "))
}

// RenderRow draws one topic: marker, name, streak, mastery bar.
func RenderRow(r TopicRow, width int, selected bool) string {
	marker := "  "
	if selected {
		marker = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ")
	}

	check := theme.Hint.Render("○")
	if r.DoneToday {
		check = theme.Done.Render("✓")
	}

	name := lipgloss.NewStyle().
		Foreground(theme.TopicColor(r.Color)).
		Bold(selected).
		Width(nameWidth).
		Render(truncate(r.Name, nameWidth-1))

	meta := theme.Hint.Render(fmt.Sprintf("%3d cards  🔥%-3d", r.Cards, r.Streak))

	left := marker + check + " " + name + meta + "  "
	bar := components.ProgressBar{
		Percent:     float64(r.Mastery) / 100,
		ShowPercent: true,
		Width:       max(width-lipgloss.Width(left), 16),
		Fill:        LevelColor(r.Level),
	}
	return left + bar.View()
}

// LevelColor is the bar color for a mastery level.
func LevelColor(l mastery.Level) color.Color {
	switch l {
	case mastery.LevelStrong:
		return theme.Success
	case mastery.LevelBuilding:
		return theme.Building
	default:
		return theme.Error
	}
}

const nameWidth = 22

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
