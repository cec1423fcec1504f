package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over a generative backend. Exercise
// generation talks to this interface only; concrete providers are thin
// adapters selected by configuration.
type Provider interface {
	// Generate sends a prompt to the model and returns structured JSON.
	// When the request carries a Schema, the provider uses its native
	// structured-output mechanism where available and validates the
	// response against the schema before returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Exercise generation is single-turn,
	// so this usually holds one user message.
	Messages []Message

	// Schema, when set, is the JSON Schema the response must conform to.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature controls sampling randomness (0.0-1.0). Exercise
	// generation uses a moderate value tuned for consistency.
	Temperature float64
}

// Message is one turn in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema. Kebab-case, e.g. "reading-exercise".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated JSON payload.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens", "safety", "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
