package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-answer",
		Description: "test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"answer": map[string]any{
					"type": "string",
					"enum": []any{"A", "B", "C", "D"},
				},
			},
			"required":             []any{"answer"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	if err := validateResponse(testSchema(), json.RawMessage(`{"answer":"B"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`{"answer":"E"}`))
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponse_MissingField(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`{}`))
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponse_NotJSON(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`not json`))
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("nil schema should skip validation, got %v", err)
	}
}
