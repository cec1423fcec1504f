package exercisegen

import (
	"github.com/rgilks/comprehendo-sub000/internal/exercise"
)

// StructuralValidator checks field presence, option-key completeness and
// enum membership of the correct answer. It does not judge pedagogical
// quality; that signal comes from learner feedback after the fact.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(ex *exercise.Exercise) *ValidationError {
	if ex.Passage == "" {
		return v.fail("paragraph is empty")
	}
	if ex.Question == "" {
		return v.fail("question is empty")
	}
	if _, err := exercise.ParseKey(string(ex.CorrectAnswer)); err != nil {
		return v.fail("correctAnswer must be one of A, B, C, D")
	}
	for _, k := range exercise.Keys {
		if ex.Options.Get(k) == "" {
			return v.fail("option " + string(k) + " is empty")
		}
		if ex.Explanations.Get(k) == "" {
			return v.fail("explanation " + string(k) + " is empty")
		}
	}
	if ex.RelevantText == "" {
		return v.fail("relevantText is empty")
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}
