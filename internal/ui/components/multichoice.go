package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rgilks/comprehendo-sub000/internal/exercise"
	"github.com/rgilks/comprehendo-sub000/internal/ui/theme"
)

// MultiChoice is a keyed A-D option selector for a comprehension question.
type MultiChoice struct {
	Question  string
	Options   exercise.Options
	Selected  int
	Submitted bool
	Chosen    exercise.Key
	Correct   exercise.Key
}

// NewMultiChoice creates a selector for one exercise's question.
func NewMultiChoice(question string, options exercise.Options, correct exercise.Key) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Correct:  correct,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Once submitted the
// component is inert until replaced for the next exercise.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(exercise.Keys)-1 {
			m.Selected++
		}
	case "a", "b", "c", "d":
		for i, key := range exercise.Keys {
			if strings.EqualFold(kmsg.String(), string(key)) {
				m.Selected = i
				m.submit()
				break
			}
		}
	case "enter":
		m.submit()
	}

	return m, nil
}

func (m *MultiChoice) submit() {
	m.Submitted = true
	m.Chosen = exercise.Keys[m.Selected]
}

// View renders the question and options.
func (m MultiChoice) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question) + "\n\n"

	for i, key := range exercise.Keys {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, key, m.Options.Get(key))

		switch {
		case m.Submitted && key == m.Correct:
			s += theme.Correct.Render(line) + "\n"
		case m.Submitted && key == m.Chosen:
			s += theme.Incorrect.Render(line) + "\n"
		case m.Submitted:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}

// IsCorrect reports whether the submitted choice matches the correct key.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.Chosen == m.Correct
}
