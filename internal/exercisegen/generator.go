package exercisegen

import (
	"context"

	"github.com/rgilks/comprehendo-sub000/internal/cefr"
	"github.com/rgilks/comprehendo-sub000/internal/exercise"
)

// GenerateInput holds all context needed to generate one exercise.
type GenerateInput struct {
	// Topic is the subject of the passage, typically drawn from the
	// level's topic pool.
	Topic string

	// PassageLanguage and QuestionLanguage are ISO 639-1 codes.
	PassageLanguage  string
	QuestionLanguage string

	// Level is the target CEFR difficulty.
	Level cefr.Level
}

// Generator produces reading-comprehension exercises.
type Generator interface {
	// Generate produces a single validated exercise, retrying failed
	// attempts up to the configured bound before returning the last error.
	Generate(ctx context.Context, input GenerateInput) (*exercise.Exercise, error)
}
