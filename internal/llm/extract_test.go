package llm

import (
	"errors"
	"testing"
)

func TestExtractJSON_BareObject(t *testing.T) {
	got, err := ExtractJSON(`{"passage": "Hola", "question": "Que?"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"passage": "Hola", "question": "Que?"}` {
		t.Errorf("unexpected content: %s", got)
	}
}

func TestExtractJSON_FencedWithTag(t *testing.T) {
	text := "Here is the exercise:\n```json\n{\"a\": 1}\n```\nHope that helps!"
	got, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"a": 1}` {
		t.Errorf("unexpected content: %s", got)
	}
}

func TestExtractJSON_FencedNoTag(t *testing.T) {
	text := "```\n{\"a\": 1}\n```"
	got, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"a": 1}` {
		t.Errorf("unexpected content: %s", got)
	}
}

func TestExtractJSON_ObjectEmbeddedInProse(t *testing.T) {
	got, err := ExtractJSON(`Sure! {"a": 1} is the answer.`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"a": 1}` {
		t.Errorf("unexpected content: %s", got)
	}
}

func TestExtractJSON_Array(t *testing.T) {
	got, err := ExtractJSON("  [1, 2, 3]  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `[1, 2, 3]` {
		t.Errorf("unexpected content: %s", got)
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON("I cannot help with that.")
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestExtractJSON_Empty(t *testing.T) {
	_, err := ExtractJSON("   ")
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestExtractJSON_MalformedJSON(t *testing.T) {
	_, err := ExtractJSON(`{"a": `)
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}
