package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/utils"
)

// AIClient is the generative-text collaborator. One composed prompt in, one
// completion out; a JSON variant for structured analysis. Failures are
// propagated, never retried here: the surrounding turn is not idempotent and
// a duplicate completion would be persisted twice.
type AIClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, out interface{}) error
}

type geminiClient struct {
	log    *logger.Logger
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, log *logger.Logger) (AIClient, error) {
	apiKey := utils.GetEnv("GEMINI_API_KEY", "", nil)
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	model := utils.GetEnv("GEMINI_MODEL", "gemini-2.0-flash-exp", log)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiClient{
		log:    log.With("service", "GeminiClient"),
		client: client,
		model:  model,
	}, nil
}

func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty completion")
	}
	return text, nil
}

func (c *geminiClient) GenerateJSON(ctx context.Context, prompt string, out interface{}) error {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return fmt.Errorf("gemini generate json: %w", err)
	}
	raw := stripCodeFence(resp.Text())
	if raw == "" {
		return fmt.Errorf("gemini returned empty completion")
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to parse model JSON: %w; text=%s", err, raw)
	}
	return nil
}

// Models occasionally wrap JSON output in a markdown fence even when asked
// for raw JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
