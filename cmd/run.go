package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgilks/comprehendo-sub000/internal/app"
	"github.com/rgilks/comprehendo-sub000/internal/cefr"
	"github.com/rgilks/comprehendo-sub000/internal/exercisegen"
	"github.com/rgilks/comprehendo-sub000/internal/llm"
	"github.com/rgilks/comprehendo-sub000/internal/quiz"
	"github.com/rgilks/comprehendo-sub000/internal/service"
	"github.com/rgilks/comprehendo-sub000/internal/store"
)

// runApp opens the store, builds the service and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	passageLang, _ := cmd.Flags().GetString("language")
	questionLang, _ := cmd.Flags().GetString("question-language")
	if !cefr.KnownLanguage(passageLang) {
		return fmt.Errorf("unsupported passage language %q", passageLang)
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

	learnerID, err := store.EnsureLearnerID(dbPath)
	if err != nil {
		return fmt.Errorf("resolve learner id: %w", err)
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.Events())
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w\n\nSet GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY and try again", err)
	}

	generator := exercisegen.New(provider, exercisegen.DefaultConfig())
	svc := service.New(st, generator, nil, service.Config{})

	progress, err := svc.FetchProgress(ctx, learnerID, passageLang)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	quizStore := quiz.NewStore(svc, quiz.Settings{
		LearnerID:        learnerID,
		PassageLanguage:  passageLang,
		QuestionLanguage: questionLang,
	}, progress, nil)

	return app.Run(quizStore)
}
