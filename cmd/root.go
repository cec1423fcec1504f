package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rgilks/comprehendo-sub000/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "comprehendo",
	Short: "AI reading comprehension tutor",
	Long:  "Comprehendo is a terminal app that generates CEFR-graded reading comprehension exercises and tracks your progression as you practice.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	// A .env next to the binary is the easiest way to carry API keys.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides COMPREHENDO_DB env var)")
	rootCmd.PersistentFlags().StringP("language", "l", "es", "Passage language (ISO 639-1 code)")
	rootCmd.PersistentFlags().String("question-language", "en", "Question language (ISO 639-1 code)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then COMPREHENDO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
