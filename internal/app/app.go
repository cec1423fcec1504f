// Package app wires the practice session together and runs the terminal
// program.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/rgilks/comprehendo-sub000/internal/quiz"
	"github.com/rgilks/comprehendo-sub000/internal/screens/play"
)

// Run starts the Bubble Tea program around an initialized quiz store.
func Run(store *quiz.Store) error {
	p := tea.NewProgram(play.New(store))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
