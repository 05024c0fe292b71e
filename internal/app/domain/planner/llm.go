package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/WUZhiyun112/travelplanner/internal/observability"
)

// Generator produces a plan from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DeepSeekGenerator calls the DeepSeek chat-completion API, which is
// OpenAI-compatible.
type DeepSeekGenerator struct {
	api         openai.Client
	model       string
	maxTokens   int64
	temperature float64
	log         *zap.Logger
}

// NewDeepSeekGenerator builds a generator. baseURL defaults to the
// public DeepSeek endpoint; tests point it at a local server.
func NewDeepSeekGenerator(apiKey, baseURL, model string, log *zap.Logger) *DeepSeekGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	if baseURL == "" {
		baseURL = "https://api.deepseek.com"
	}
	if model == "" {
		model = "deepseek-chat"
	}
	return &DeepSeekGenerator{
		api: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model:       model,
		maxTokens:   2000,
		temperature: 0.7,
		log:         log,
	}
}

func (g *DeepSeekGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(g.temperature),
		MaxTokens:   openai.Int(g.maxTokens),
	}

	start := time.Now()
	resp, err := g.api.Chat.Completions.New(ctx, params)
	observability.Get().LLMRequestDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(
			attribute.String("model", g.model),
			attribute.Bool("error", err != nil),
		),
	)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	g.log.Debug("Plan generated",
		zap.String("model", g.model),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)
	return resp.Choices[0].Message.Content, nil
}
