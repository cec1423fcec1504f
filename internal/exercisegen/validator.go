package exercisegen

import (
	"fmt"

	"github.com/rgilks/comprehendo-sub000/internal/exercise"
)

// Validator checks a generated exercise for structural correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for error messages, e.g. "structural".
	Name() string

	// Validate returns nil if the exercise passes the check.
	Validate(ex *exercise.Exercise) *ValidationError
}

// ValidationError describes why a generated exercise was rejected.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
