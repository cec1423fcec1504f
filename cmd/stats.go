package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgilks/comprehendo-sub000/internal/cefr"
	"github.com/rgilks/comprehendo-sub000/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress and cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		questionLang, _ := cmd.Flags().GetString("question-language")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		learnerID, err := store.EnsureLearnerID(dbPath)
		if err != nil {
			return fmt.Errorf("resolve learner id: %w", err)
		}

		rows, err := st.Progress().All(ctx, learnerID)
		if err != nil {
			return err
		}

		if len(rows) == 0 {
			fmt.Println("No practice recorded yet. Run `comprehendo play` to get started.")
			return nil
		}

		fmt.Println("Progress")
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-12s  %-6s  %-7s  %s\n", "Language", "Level", "Streak", "Last practiced")
		for _, p := range rows {
			last := "never"
			if !p.LastPracticed.IsZero() {
				last = p.LastPracticed.Local().Format("2006-01-02 15:04")
			}
			fmt.Printf("%-12s  %-6s  %-7d  %s\n",
				cefr.LanguageName(p.Language), p.Level, p.Streak, last)
		}

		fmt.Println()
		fmt.Println("Cached exercises")
		fmt.Println(strings.Repeat("─", 56))
		for _, p := range rows {
			var counts []string
			for _, level := range cefr.Ladder {
				n, err := st.Exercises().CountCached(ctx, p.Language, questionLang, level)
				if err != nil {
					return err
				}
				if n > 0 {
					counts = append(counts, fmt.Sprintf("%s: %d", level, n))
				}
			}
			if len(counts) == 0 {
				counts = []string{"none"}
			}
			fmt.Printf("%-12s  %s\n", cefr.LanguageName(p.Language), strings.Join(counts, "  "))
		}

		return nil
	},
}
