// Package llm - json.go provides shared utilities for completion response processing.
package llm

import (
	"encoding/json"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// ExtractJSON locates the JSON value inside free-form model output: the slice
// from the earliest '{' or '[' to the latest '}' or ']'. This tolerates prose
// wrapping ("Here is the JSON: {...}") without a grammar-aware parser, at the
// cost of being fooled by unrelated brackets in the surrounding prose.
// Returns a MalformedResponseError when no opening bracket exists, no closing
// bracket exists, or the candidate slice does not parse.
func ExtractJSON(raw string) (json.RawMessage, error) {
	raw = CleanJSONBlock(raw)
	if strings.TrimSpace(raw) == "" {
		return nil, &MalformedResponseError{Message: "expected a non-empty response"}
	}

	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")
	start := objStart
	switch {
	case objStart == -1:
		start = arrStart
	case arrStart != -1 && arrStart < objStart:
		start = arrStart
	}
	if start == -1 {
		return nil, &MalformedResponseError{Message: "no JSON object or array found in response"}
	}

	objEnd := strings.LastIndex(raw, "}")
	arrEnd := strings.LastIndex(raw, "]")
	end := objEnd
	if arrEnd > end {
		end = arrEnd
	}
	if end == -1 || end < start {
		return nil, &MalformedResponseError{Message: "JSON response is not properly terminated"}
	}

	candidate := raw[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, &MalformedResponseError{Message: "response slice is not valid JSON"}
	}
	return json.RawMessage(candidate), nil
}

// DecodeJSON extracts the JSON value from raw model output and unmarshals it
// into v, converting decode failures into MalformedResponseError.
func DecodeJSON(raw string, v any) error {
	candidate, err := ExtractJSON(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(candidate, v); err != nil {
		return &MalformedResponseError{Message: "failed to decode JSON response", Cause: err}
	}
	return nil
}
