package exercisegen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rgilks/comprehendo-sub000/internal/exercise"
	"github.com/rgilks/comprehendo-sub000/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate runs the build-prompt / call / decode / validate pipeline.
// Provider and validation failures both consume one attempt; after
// MaxRetries+1 attempts the last error is returned.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*exercise.Exercise, error) {
	ctx = llm.WithPurpose(ctx, "exercise-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildPrompt(PromptInput{
				Topic:            input.Topic,
				PassageLanguage:  input.PassageLanguage,
				QuestionLanguage: input.QuestionLanguage,
				Level:            input.Level,
			})},
		},
		Schema:      ExerciseSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		ex, err := g.attempt(ctx, req, input)
		if err == nil {
			return ex, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("exercise generation failed after %d attempts: %w",
		g.config.MaxRetries+1, lastErr)
}

func (g *LLMGenerator) attempt(ctx context.Context, req llm.Request, input GenerateInput) (*exercise.Exercise, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	var ex exercise.Exercise
	if err := json.Unmarshal(resp.Content, &ex); err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("decode exercise: %w", err),
		}
	}

	// The request context is authoritative for languages and level; the
	// model's echo of them is not trusted.
	ex.PassageLanguage = input.PassageLanguage
	ex.QuestionLanguage = input.QuestionLanguage
	ex.Level = input.Level
	if ex.Topic == "" {
		ex.Topic = input.Topic
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(&ex); verr != nil {
			return nil, verr
		}
	}

	return &ex, nil
}
