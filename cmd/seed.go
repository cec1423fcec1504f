package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgilks/comprehendo-sub000/internal/bulkgen"
	"github.com/rgilks/comprehendo-sub000/internal/cefr"
	"github.com/rgilks/comprehendo-sub000/internal/exercisegen"
	"github.com/rgilks/comprehendo-sub000/internal/llm"
	"github.com/rgilks/comprehendo-sub000/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Pre-generate exercises into the cache",
	Long:  "Seed warms the exercise cache ahead of demand by bulk-generating exercises for the given languages and levels.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		languages, _ := cmd.Flags().GetStringSlice("languages")
		levelNames, _ := cmd.Flags().GetStringSlice("levels")
		count, _ := cmd.Flags().GetInt("count")
		batchSize, _ := cmd.Flags().GetInt("batch-size")
		callDelay, _ := cmd.Flags().GetDuration("call-delay")
		batchDelay, _ := cmd.Flags().GetDuration("batch-delay")
		questionLang, _ := cmd.Flags().GetString("question-language")

		var levels []cefr.Level
		for _, name := range levelNames {
			level, err := cefr.Parse(name)
			if err != nil {
				return err
			}
			levels = append(levels, level)
		}
		for _, lang := range languages {
			if !cefr.KnownLanguage(lang) {
				return fmt.Errorf("unsupported language %q", lang)
			}
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		log, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		provider, err := llm.NewProviderFromEnv(ctx, st.Events())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		// Sustained throughput runs into rate limits, so the seeder's
		// provider gets the backoff decorator on top of the generator's
		// own validation retry.
		provider = llm.WithRetry(provider, llm.ConfigFromEnv().Retry)
		generator := exercisegen.New(provider, exercisegen.DefaultConfig())

		seeder := bulkgen.New(generator, st.Exercises(), log)
		report, err := seeder.Run(ctx, bulkgen.Options{
			PassageLanguages: languages,
			QuestionLanguage: questionLang,
			Levels:           levels,
			Count:            count,
			BatchSize:        batchSize,
			CallDelay:        callDelay,
			BatchDelay:       batchDelay,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Seeded %d exercises (%d failures)\n", report.Generated, report.Failed)
		for combo, n := range report.ByCombination {
			fmt.Printf("  %-8s %d\n", combo, n)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringSlice("languages", []string{"es"}, "Passage languages to seed")
	seedCmd.Flags().StringSlice("levels", []string{"A1", "A2", "B1"}, "CEFR levels to seed")
	seedCmd.Flags().Int("count", 5, "Exercises per language/level combination")
	seedCmd.Flags().Int("batch-size", 3, "Concurrent generation calls per batch")
	seedCmd.Flags().Duration("call-delay", 500*time.Millisecond, "Delay between call launches within a batch")
	seedCmd.Flags().Duration("batch-delay", 5*time.Second, "Delay between batches")
}
