// Package llm provides the completion-service boundary: a Client abstraction
// with a Gemini-backed implementation for the proxy server and an HTTP
// implementation for the widget side, plus the shared error taxonomy and
// response-processing helpers.
package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over completion providers.
type Client interface {
	// GenerateContent generates free-form text for a prompt.
	GenerateContent(ctx context.Context, req Request) (string, error)
	// GenerateJSON generates content expected to contain a single JSON value.
	// The returned string is raw model text; callers parse it with DecodeJSON.
	GenerateJSON(ctx context.Context, req Request) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// Request is a single generation request.
type Request struct {
	Prompt            string
	SystemInstruction string
}

// GeminiClient implements Client against the Gemini API directly. It runs
// server-side only; the API key never reaches the widget.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed client for the given model.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &ServiceMisconfiguredError{Message: "API key not found"}
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &APICallError{Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{client: client, model: model}, nil
}

// GenerateContent generates free-form text for a prompt.
func (c *GeminiClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	return c.generate(ctx, req, "")
}

// GenerateJSON generates content with a JSON response MIME type.
func (c *GeminiClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	return c.generate(ctx, req, MIMETypeJSON)
}

func (c *GeminiClient) generate(ctx context.Context, req Request, mimeType string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	if mimeType != "" {
		model.ResponseMIMEType = mimeType
	}
	if req.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemInstruction)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", classifyProviderError(err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	if mimeType == MIMETypeJSON {
		text = CleanJSONBlock(text)
	}
	return text, nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &MalformedResponseError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &MalformedResponseError{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", &MalformedResponseError{Message: "no text parts in response"}
	}
	return strings.Join(parts, ""), nil
}

// classifyProviderError maps provider failures onto the shared taxonomy.
func classifyProviderError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Cause: err}
	}
	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "quota") {
		return &QuotaError{Message: msg}
	}
	return &APICallError{Message: "failed to generate content", Cause: err}
}
