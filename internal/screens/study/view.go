package study

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/vodila/vodila/internal/session"
	"github.com/vodila/vodila/internal/ui/components"
	"github.com/vodila/vodila/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	var content string
	switch s.machine.Phase() {
	case sess.PhaseLoading:
		content = s.spinner.View() + " " + theme.Hint.Render("Loading cards...")
	case sess.PhaseEmpty:
		content = s.renderEmpty()
	case sess.PhaseActive:
		content = s.renderCard(width)
	case sess.PhaseComplete:
		content = s.renderComplete(width)
	default:
		content = ""
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *StudyScreen) renderEmpty() string {
	if err := s.machine.Err(); err != nil {
		return lipgloss.JoinVertical(lipgloss.Center,
			theme.Unknown.Render("Could not load cards"),
			theme.Hint.Render(err.Error()),
			"",
			theme.Body.Render("Press R to try again"),
		)
	}
	msg := "No cards in this mode"
	if s.mode.UnknownOnly() {
		msg = "No unknown cards. Nice work!"
	}
	return theme.Subtitle.Render(msg)
}

func (s *StudyScreen) renderCard(width int) string {
	card, ok := s.machine.Current()
	if !ok {
		return ""
	}

	cardWidth := min(max(width-2*components.DragRoom-4, 24), 60)
	shift := 0
	if s.gesture.Dragging() {
		shift = int(math.Round(s.gesture.Offset() / s.unitSize))
		shift = min(max(shift, -components.DragRoom), components.DragRoom)
	}

	fc := components.FlashCard{
		Card:     card,
		Revealed: s.revealed,
		Shift:    shift,
		Strength: s.gesture.Strength(),
		Tilt:     s.gesture.Rotation(),
		Width:    cardWidth,
		Verdict:  s.verdict,
	}

	ses := s.machine.Session()
	bar := components.NewProgressBar("", float64(ses.Position)/float64(ses.Len()), false, cardWidth)

	var b strings.Builder
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(fc.View())
	if res, ok := s.machine.ExamResult(); ok {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("exam: %d answered", res.Total())))
	}
	return b.String()
}

func (s *StudyScreen) renderComplete(width int) string {
	var lines []string
	if res, ok := s.machine.ExamResult(); ok {
		lines = append(lines,
			theme.Title.Render("Exam finished"),
			"",
			theme.Body.Render(fmt.Sprintf("Score: %d / %d", res.Correct, res.Total())),
			components.NewProgressBar("", float64(res.Percent())/100, true, min(width-4, 40)).View(),
			"",
			theme.Known.Render(fmt.Sprintf("known %d", res.Correct))+"   "+
				theme.Unknown.Render(fmt.Sprintf("unknown %d", res.Incorrect)),
		)
	} else {
		lines = append(lines,
			theme.Title.Render("Session complete"),
			"",
			theme.Body.Render(fmt.Sprintf("You went through %d cards", s.machine.Session().Len())),
		)
	}
	lines = append(lines, "", theme.Hint.Render("R to go again, Esc to go back"))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
