package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/brainbuilder/internal/drill"
	"github.com/abhisek/brainbuilder/internal/ui/components"
	"github.com/abhisek/brainbuilder/internal/ui/theme"
)

const cardWidth = 56

func (s *DrillScreen) View(width, height int) string {
	var content string
	switch s.phase {
	case phaseEmpty:
		content = theme.Hint.Render("This topic has no cards yet.\n\nAdd some with `brainbuilder card add`.")
	case phaseCards:
		content = s.renderCard()
	case phaseConfidence:
		content = s.renderConfidence()
	case phaseSummary:
		content = s.renderSummary()
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *DrillScreen) renderCard() string {
	card, _ := s.session.CurrentCard()
	w := min(cardWidth, 80)

	progress := components.NewProgressBar(
		fmt.Sprintf("Card %d/%d", s.session.Current()+1, s.session.Total()),
		float64(s.session.Current())/float64(s.session.Total()),
		false, w,
	)
	progress.Fill = theme.TopicColor(s.topic.Color)

	body := theme.Body.Bold(true).Render(card.Front)
	if s.session.Revealed() {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", w-6)) +
			"\n\n" + theme.Body.Render(card.Back)
	} else {
		body += "\n\n" + theme.Hint.Render("press space to reveal")
	}

	box := theme.Card.
		Width(w).
		BorderForeground(theme.TopicColor(s.topic.Color)).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		progress.View(),
		"",
		box,
		"",
		theme.Hint.Render(fmt.Sprintf("%d correct so far", s.session.Correct())),
	)
}

func (s *DrillScreen) renderConfidence() string {
	lines := []string{
		theme.Title.Render("Drill complete"),
		"",
		theme.Body.Render(fmt.Sprintf("Score: %d/%d (%d%%)", s.session.Correct(), s.session.Total(), s.session.ScorePct())),
		"",
		theme.Body.Render("How confident do you feel? (1-5)"),
		theme.Hint.Render("1 = shaky · 5 = rock solid"),
	}
	return strings.Join(lines, "\n")
}

func (s *DrillScreen) renderSummary() string {
	score := theme.Done
	if s.record.ScorePct < 50 {
		score = theme.Missed
	}
	lines := []string{
		theme.Title.Render(s.topic.Name),
		"",
		score.Render(fmt.Sprintf("%d%%", s.record.ScorePct)) +
			theme.Hint.Render(fmt.Sprintf("  %d/%d correct", s.record.Correct, s.record.Total)),
		theme.Body.Render("Time: " + sess.FormatTime(s.record.DurationSec)),
		theme.Body.Render(fmt.Sprintf("Confidence: %d/5", s.record.Confidence)),
	}
	if s.err != nil {
		lines = append(lines, "", theme.Missed.Render("Could not save: "+s.err.Error()))
	} else {
		lines = append(lines, "", theme.Done.Render("Saved ✓"))
	}
	return strings.Join(lines, "\n")
}
