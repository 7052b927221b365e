package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ProxyTimeout is the client-side deadline for a generation request. On
// expiry the request is treated as failed, not retried.
const ProxyTimeout = 25 * time.Second

// ProxyClient implements Client against the serverless generate proxy, the
// widget's single point of contact with the completion service. The proxy
// holds the API key; this client never sees it.
type ProxyClient struct {
	http  *resty.Client
	model string
}

// NewProxyClient creates a proxy-backed client targeting baseURL (the full
// URL of the generate endpoint).
func NewProxyClient(baseURL, model string) *ProxyClient {
	if model == "" {
		model = DefaultModel
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(ProxyTimeout).
		SetHeader("Content-Type", "application/json")
	return &ProxyClient{http: client, model: model}
}

// GenerateContent generates free-form text for a prompt via the proxy.
func (c *ProxyClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	return c.call(ctx, req, "")
}

// GenerateJSON generates content with a JSON response MIME type via the proxy.
func (c *ProxyClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	text, err := c.call(ctx, req, MIMETypeJSON)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *ProxyClient) call(ctx context.Context, req Request, mimeType string) (string, error) {
	body := GenerateRequest{
		Model: c.model,
		// Structured message lists are the one format the proxy accepts from
		// every caller.
		Contents: NewMessageContents(req.Prompt),
	}
	if mimeType != "" || req.SystemInstruction != "" {
		body.GenerationConfig = &GenerationConfig{
			ResponseMIMEType:  mimeType,
			SystemInstruction: req.SystemInstruction,
		}
	}

	var out GenerateResponse
	var errOut ErrorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&errOut).
		Post("")
	if err != nil {
		return "", classifyTransportError(err)
	}

	if resp.IsError() {
		msg := errOut.Error
		if msg == "" {
			msg = fmt.Sprintf("AI service returned an error: %d", resp.StatusCode())
		}
		return "", classifyProxyStatus(resp.StatusCode(), msg)
	}
	return out.Text, nil
}

// Close is a no-op; the proxy client holds no long-lived resources.
func (c *ProxyClient) Close() error { return nil }

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Cause: err}
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Cause: err}
	}
	return &APICallError{Message: "request to AI proxy failed", Cause: err}
}

func classifyProxyStatus(status int, msg string) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &QuotaError{Message: msg}
	case status >= http.StatusInternalServerError && strings.Contains(strings.ToLower(msg), "api key"):
		return &ServiceMisconfiguredError{Message: msg}
	default:
		return &APICallError{Message: msg}
	}
}
