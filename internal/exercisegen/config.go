package exercisegen

// DefaultMaxRetries is the number of regeneration attempts after the first
// failure. Total attempts = DefaultMaxRetries + 1.
const DefaultMaxRetries = 2

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every decoded exercise. The first
	// failure rejects the attempt.
	Validators []Validator

	// MaxRetries is the regeneration budget after a failed attempt.
	// Attempts are sequential with no inter-attempt delay: the provider
	// call dominates latency, and a malformed response is model-dependent
	// rather than load-dependent.
	MaxRetries int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls output randomness. Kept low-to-moderate so the
	// structured output stays parseable.
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
		},
		MaxRetries:  DefaultMaxRetries,
		MaxTokens:   1024,
		Temperature: 0.5,
	}
}
