// Package chat wraps the Gemini API behind the narrow collaborator
// interface the app consumes: free text in, a reply or a fixed fallback
// string out.
package chat

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Fallback is returned whenever the model call fails.
const Fallback = "عذراً، لا يمكنني الإجابة الآن. حاول مرة أخرى لاحقاً."

const defaultModel = "gemini-2.0-flash"

// Client answers free-text questions.
type Client struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// New creates a chat client.
func New(ctx context.Context, apiKey, model string, log zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: client, model: model, log: log}, nil
}

// Reply generates a reply to prompt under the given system instruction,
// returning Fallback on any failure.
func (c *Client) Reply(ctx context.Context, prompt, systemInstruction string) string {
	cfg := &genai.GenerateContentConfig{}
	if systemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		c.log.Warn().Err(err).Msg("chat generation failed")
		return Fallback
	}
	if text := result.Text(); text != "" {
		return text
	}
	return Fallback
}
