package llm

import (
	"encoding/json"
	"strings"
)

// DefaultModel is the model used when no override is configured.
const DefaultModel = "gemini-2.5-flash"

// MIMETypeJSON asks the provider for a JSON-typed response.
const MIMETypeJSON = "application/json"

// PingAPIKeyStatus is a diagnostic contents value: the proxy answers with the
// server-side key status instead of calling the provider.
const PingAPIKeyStatus = "ping_api_key_status"

// Part is one piece of a structured message.
type Part struct {
	Text string `json:"text"`
}

// Message is one turn of a structured content list.
type Message struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// GenerationConfig carries the optional generation parameters of the proxy
// wire contract.
type GenerationConfig struct {
	ResponseMIMEType  string `json:"responseMimeType,omitempty"`
	SystemInstruction string `json:"systemInstruction,omitempty"`
}

// GenerateRequest is the proxy request body. Contents is either a plain
// string or a structured message list.
type GenerateRequest struct {
	Model            string            `json:"model"`
	Contents         json.RawMessage   `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerateResponse is the proxy success body.
type GenerateResponse struct {
	Text string `json:"text"`
}

// ErrorResponse is the proxy error body, paired with a non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewStringContents encodes a plain prompt as request contents.
func NewStringContents(prompt string) json.RawMessage {
	b, _ := json.Marshal(prompt)
	return b
}

// NewMessageContents encodes a single-turn structured message list, the
// format the proxy always receives from the widget.
func NewMessageContents(prompt string) json.RawMessage {
	b, _ := json.Marshal([]Message{{Role: "user", Parts: []Part{{Text: prompt}}}})
	return b
}

// PromptFromContents flattens request contents back into prompt text,
// accepting both the plain-string and message-list encodings.
func PromptFromContents(contents json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(contents, &s); err == nil {
		return s, true
	}
	var msgs []Message
	if err := json.Unmarshal(contents, &msgs); err == nil && len(msgs) > 0 {
		var sb strings.Builder
		for _, m := range msgs {
			for _, p := range m.Parts {
				if sb.Len() > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString(p.Text)
			}
		}
		return sb.String(), true
	}
	return "", false
}
