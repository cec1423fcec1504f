// Package play is the interactive practice screen: one exercise at a time,
// read, answer, review feedback, move on.
package play

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/rgilks/comprehendo-sub000/internal/exercise"
	"github.com/rgilks/comprehendo-sub000/internal/quiz"
	"github.com/rgilks/comprehendo-sub000/internal/ui/components"
	"github.com/rgilks/comprehendo-sub000/internal/ui/theme"
)

// Model is the play screen's Bubble Tea model. All progression state lives
// in the quiz store; the model holds only view concerns.
type Model struct {
	store *quiz.Store

	choice   components.MultiChoice
	spin     spinner.Model
	loading  bool
	verdict  bool // a verdict was submitted for the current exercise
	gateMsg  string
	width    int
	height   int
	quitting bool
}

// New builds the play screen around a quiz store.
func New(store *quiz.Store) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Selected

	return Model{
		store:   store,
		spin:    sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return exerciseReadyMsg{Err: m.store.Load(context.Background())}
	}
}

func (m Model) loadNextCmd() tea.Cmd {
	return func() tea.Msg {
		return exerciseReadyMsg{Err: m.store.LoadNext(context.Background())}
	}
}

func (m Model) answerCmd(key exercise.Key) tea.Cmd {
	return func() tea.Msg {
		return answerGradedMsg{Err: m.store.SelectAnswer(context.Background(), key)}
	}
}

func (m Model) prefetchCmd() tea.Cmd {
	return func() tea.Msg {
		m.store.Prefetch(context.Background())
		return prefetchDoneMsg{}
	}
}

func (m Model) verdictCmd(isGood bool) tea.Cmd {
	return func() tea.Msg {
		return verdictDoneMsg{Err: m.store.SubmitVerdict(context.Background(), isGood)}
	}
}

// resetChoice rebuilds the option selector for the freshly adopted exercise.
func (m *Model) resetChoice() {
	snap := m.store.Snapshot()
	if snap.Exercise == nil {
		return
	}
	m.choice = components.NewMultiChoice(snap.Exercise.Question, snap.Exercise.Options, snap.Exercise.CorrectAnswer)
	m.verdict = false
	m.gateMsg = ""
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case exerciseReadyMsg:
		m.loading = false
		if msg.Err == nil {
			m.resetChoice()
		}
		return m, nil

	case answerGradedMsg:
		// Warm the next slot while the learner reads the feedback.
		return m, m.prefetchCmd()

	case prefetchDoneMsg, verdictDoneMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	}

	if m.loading {
		return m, nil
	}

	snap := m.store.Snapshot()

	if !snap.Answered {
		switch msg.String() {
		case "t":
			if m.store.UseHoverCredit() {
				m.gateMsg = ""
			} else {
				m.gateMsg = "No translation credits left for this exercise. Answer to continue."
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.choice, cmd = m.choice.Update(msg)
		if m.choice.Submitted {
			return m, tea.Batch(cmd, m.answerCmd(m.choice.Chosen))
		}
		return m, cmd
	}

	// Feedback is on screen.
	switch msg.String() {
	case "g":
		if !m.verdict {
			m.verdict = true
			return m, m.verdictCmd(true)
		}
	case "b":
		if !m.verdict {
			m.verdict = true
			return m, m.verdictCmd(false)
		}
	case "n", "enter":
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.loadNextCmd())
	}
	return m, nil
}
