package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"marketcheck/internal/domain"
	"marketcheck/internal/report"
)

// Generator produces the market analysis through an OpenAI-compatible
// chat-completion endpoint. The default configuration targets Groq, which
// speaks the same protocol.
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
}

// Config configures the chat-completion client. The API key is read from the
// environment variable named by APIKeyEnv.
type Config struct {
	BaseURL     string
	APIKeyEnv   string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// NewGenerator creates a report generator from the provided configuration.
func NewGenerator(cfg Config) (*Generator, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "llama-3.1-8b-instant"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3
	}
	clientCfg := openai.DefaultConfig(key)
	clientCfg.BaseURL = cfg.BaseURL
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Generator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Name returns the identifier of this generator implementation.
func (g *Generator) Name() string { return "openai" }

// Generate sends the analysis prompt as a single user message and returns
// the completion text verbatim. The call is not retried; a failure surfaces
// whole rather than as a partial report.
func (g *Generator) Generate(ctx context.Context, idea string, candidates []domain.ScoredCandidate) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: report.BuildPrompt(idea, candidates)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("report generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	return resp.Choices[0].Message.Content, nil
}
