// Package motivation asks an OpenAI-compatible chat-completions API for a
// short motivational message. Calls are made once; there is no retry.
package motivation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
)

// Generator produces a motivational message for a goal, optionally informed
// by the user's journal text.
type Generator interface {
	Motivate(ctx context.Context, goal, journal string) (string, error)
}

var _ Generator = (*Client)(nil)

const systemPrompt = "You are a supportive coach. Reply with two or three short sentences " +
	"that motivate the user toward their goal. Refer to their journal when it helps."

// Client talks to the chat-completions API.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient returns a client for the API rooted at baseURL, for example
// https://api.openai.com/v1.
func NewClient(baseURL, model, key string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(key)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

func (c *Client) Motivate(ctx context.Context, goal, journal string) (string, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return "", fmt.Errorf("goal is empty: %w", common.ErrValidation)
	}

	user := "My goal: " + goal
	if j := strings.TrimSpace(journal); j != "" {
		user += "\n\nMy journal:\n" + j
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", describe(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("chat completions returned no message")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func describe(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat completions returned status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("chat completions returned status %d: %w", reqErr.HTTPStatusCode, err)
	}
	return fmt.Errorf("chat completions: %w", err)
}
