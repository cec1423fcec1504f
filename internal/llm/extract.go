package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls a JSON object or array out of raw model text. Models
// routed through OpenAI-compatible gateways sometimes wrap the payload in
// prose or a fenced code block even when a response format was requested.
//
// A fenced block is preferred when present; otherwise the trimmed text is
// accepted if it is syntactically JSON. Returns *ErrInvalidResponse when no
// parseable payload is found.
func ExtractJSON(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("empty response text")}
	}

	if fenced, ok := extractFenced(trimmed); ok {
		trimmed = fenced
	}

	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		// Salvage a bare object embedded in prose.
		start := strings.IndexByte(trimmed, '{')
		end := strings.LastIndexByte(trimmed, '}')
		if start == -1 || end <= start {
			return nil, &ErrInvalidResponse{
				Content: json.RawMessage(text),
				Err:     fmt.Errorf("no JSON content found in response"),
			}
		}
		trimmed = trimmed[start : end+1]
	}

	if !json.Valid([]byte(trimmed)) {
		return nil, &ErrInvalidResponse{
			Content: json.RawMessage(text),
			Err:     fmt.Errorf("response text is not valid JSON"),
		}
	}

	return json.RawMessage(trimmed), nil
}

// extractFenced returns the body of the first ``` fence, tolerating a
// language tag on the opening line.
func extractFenced(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start == -1 {
		return "", false
	}

	body := text[start+3:]
	if nl := strings.IndexByte(body, '\n'); nl != -1 {
		firstLine := strings.TrimSpace(body[:nl])
		// Opening line may carry a tag like "json".
		if firstLine == "" || !strings.ContainsAny(firstLine, "{[") {
			body = body[nl+1:]
		}
	}

	end := strings.Index(body, "```")
	if end == -1 {
		return "", false
	}

	return strings.TrimSpace(body[:end]), true
}
