// ABOUTME: Anthropic API client for the workout assistant.
// ABOUTME: Forces structured output through a propose_action tool, with retry.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cenkalti/backoff/v4"

	"github.com/harperreed/lift/internal/draft"
)

// DefaultModel is used when the config does not name one.
const DefaultModel = "claude-sonnet-4-5"

const retryMaxElapsed = 30 * time.Second

// errAPIKeyRequired is returned when no API key is available.
var errAPIKeyRequired = errors.New("API key required")

// Client wraps the Anthropic API for workout proposals.
type Client struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewClient creates an assistant client. The ANTHROPIC_API_KEY
// environment variable takes precedence over the explicit key.
func NewClient(apiKey, model string) (*Client, error) {
	if envKey := os.Getenv("ANTHROPIC_API_KEY"); envKey != "" {
		apiKey = envKey
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set ANTHROPIC_API_KEY or configure assistant.api_key", errAPIKeyRequired)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}, nil
}

// Reply is one assistant turn: freeform text plus an optional draft.
// Draft is nil when the assistant chose to answer in prose only.
type Reply struct {
	Text  string
	Draft *draft.Draft
}

// Propose sends the user's request plus store context and returns the
// assistant's reply. The draft, if present, has not been validated.
func (c *Client) Propose(ctx context.Context, system, userText string) (*Reply, error) {
	tool := proposeActionTool()
	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userText)),
		},
		Tools: []anthropic.ToolUnionParam{
			{OfTool: &tool},
		},
	}

	var message *anthropic.Message
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = retryMaxElapsed
	err := backoff.Retry(func() error {
		var callErr error
		message, callErr = c.client.Messages.New(ctx, params)
		if callErr != nil && !isRetryable(callErr) {
			return backoff.Permanent(callErr)
		}
		return callErr
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return nil, fmt.Errorf("assistant request failed: %w", err)
	}

	return parseReply(message)
}

// parseReply extracts prose and the tool-call draft from a response.
func parseReply(message *anthropic.Message) (*Reply, error) {
	reply := &Reply{}
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			if reply.Text != "" {
				reply.Text += "\n"
			}
			reply.Text += variant.Text
		case anthropic.ToolUseBlock:
			if variant.Name != proposeActionToolName {
				continue
			}
			d, err := draft.Parse([]byte(variant.JSON.Input.Raw()))
			if err != nil {
				return nil, fmt.Errorf("assistant produced an invalid draft: %w", err)
			}
			reply.Draft = d
		}
	}
	if reply.Text == "" && reply.Draft == nil {
		return nil, fmt.Errorf("unexpected response format: no content blocks")
	}
	return reply, nil
}

// isRetryable classifies transient failures: rate limits, server errors,
// and network timeouts retry; everything else fails immediately.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}

	return false
}
