package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rgilks/comprehendo-sub000/internal/quiz"
	"github.com/rgilks/comprehendo-sub000/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.quitting || m.width == 0 {
		return v
	}

	snap := m.store.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderHeader(snap))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spin.View() + " Preparing your next exercise...")
	case snap.Err != "" && snap.Exercise == nil:
		b.WriteString(theme.Incorrect.Render("Something went wrong: " + snap.Err))
	case snap.Exercise == nil:
		b.WriteString(theme.Hint.Render("No exercise loaded."))
	default:
		b.WriteString(m.renderExercise(snap))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter(snap))

	v.SetContent(b.String())
	return v
}

func (m Model) renderHeader(snap quiz.Snapshot) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Comprehendo")

	right := lipgloss.NewStyle().Foreground(theme.Accent).
		Render(fmt.Sprintf("Level %s", snap.Level)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("   ") +
		lipgloss.NewStyle().Foreground(theme.Success).
			Render(fmt.Sprintf("Streak %d", snap.Streak)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("   ") +
		m.renderCredits(snap.Budget)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return theme.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderCredits(b quiz.Budget) string {
	switch b.Phase {
	case quiz.PhaseCredits:
		return lipgloss.NewStyle().Foreground(theme.Secondary).
			Render(fmt.Sprintf("Lookups %d/%d", b.CreditsAvailable, quiz.CreditAllotment))
	case quiz.PhaseEnded:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("Lookups free")
	default:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render("Lookups unlimited")
	}
}

func (m Model) renderExercise(snap quiz.Snapshot) string {
	var b strings.Builder

	b.WriteString(theme.Card.Width(m.width - 4).Render(m.renderPassage(snap)))
	b.WriteString("\n\n")
	b.WriteString(m.choice.View())

	if m.gateMsg != "" {
		b.WriteString("\n" + theme.Hint.Render(m.gateMsg))
	}

	if snap.Answered && snap.Feedback != nil {
		b.WriteString("\n" + m.renderFeedback(snap))
	} else if snap.Answered && snap.Err != "" {
		b.WriteString("\n" + theme.Incorrect.Render("Could not grade your answer: "+snap.Err))
	}

	return b.String()
}

// renderPassage highlights the supporting quote once feedback is visible.
// Without a located range the passage renders plain.
func (m Model) renderPassage(snap quiz.Snapshot) string {
	passage := snap.Exercise.Passage
	if snap.Feedback == nil || snap.Highlight == nil {
		return theme.Body.Render(passage)
	}

	r := snap.Highlight
	return theme.Body.Render(passage[:r.Start]) +
		theme.Quoted.Render(passage[r.Start:r.End]) +
		theme.Body.Render(passage[r.End:])
}

func (m Model) renderFeedback(snap quiz.Snapshot) string {
	fb := snap.Feedback
	var b strings.Builder

	if fb.IsCorrect {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer was %s.", fb.CorrectAnswer)))
		if fb.ChosenExplanation != "" {
			b.WriteString("\n" + theme.Body.Render(fb.ChosenExplanation))
		}
	}
	b.WriteString("\n" + theme.Body.Render(fb.CorrectExplanation))

	if snap.LeveledUp {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("Level up! You are now %s.", snap.Level)))
	}

	if snap.Highlight == nil && fb.RelevantText != "" {
		b.WriteString("\n\n" + theme.Hint.Render("Supporting text: "+fb.RelevantText))
	}

	return b.String()
}

func (m Model) renderFooter(snap quiz.Snapshot) string {
	var hints []string
	if m.loading {
		hints = []string{"Q Quit"}
	} else if !snap.Answered {
		hints = []string{"↑↓ Navigate", "Enter Answer", "A-D Answer", "T Lookup", "Q Quit"}
	} else {
		hints = []string{"N Next"}
		if !m.verdict {
			hints = append([]string{"G Good question", "B Bad question"}, hints...)
		}
		hints = append(hints, "Q Quit")
	}

	return theme.Footer.Width(m.width).Render(theme.Hint.Render(strings.Join(hints, "  ·  ")))
}
