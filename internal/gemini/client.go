// Package gemini wraps the Google GenAI SDK behind the one operation
// this service needs: prompt in, text completion out.
//
// The request/response schema of the hosted API is treated as opaque;
// everything the recommender and checker rely on is the returned text
// and the error.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Completer is the text-completion dependency consumed by the
// recommender, checker, and guidelines extractor. Tests substitute a
// stub; production uses *Client.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Client calls the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. The key comes from GEMINI_API_KEY
// via config; callers should not construct a Client without one.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-flash-latest"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Complete sends a single-turn prompt and returns the full response
// text.
func (c *Client) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}
