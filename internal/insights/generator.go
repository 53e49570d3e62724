package insights

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/config"
)

// PlaceholderInsight is persisted when generation fails for any reason,
// so a refresh still documents its metrics.
const PlaceholderInsight = "No insight."

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generator renders metrics snapshots into a prompt and asks the
// text-generation provider for an insight.
type Generator struct {
	client *resty.Client
	logger *slog.Logger
	model  string
	apiKey string
}

// NewGenerator creates a generator backed by an OpenRouter-compatible
// chat-completions endpoint. The client timeout bounds every call.
func NewGenerator(cfg *config.Config, logger *slog.Logger) *Generator {
	client := resty.New().
		SetBaseURL(cfg.OpenRouterBaseURL).
		SetTimeout(cfg.GetInsightTimeout())

	return &Generator{
		client: client,
		logger: logger,
		model:  cfg.InsightModel,
		apiKey: cfg.OpenRouterAPIKey,
	}
}

// Generate produces an insight text for the snapshot. It never returns
// an error: timeouts, non-2xx responses, and malformed bodies all yield
// the placeholder so the caller can still persist a record. No retry is
// performed; a later refresh may try again.
func (g *Generator) Generate(ctx context.Context, snapshot *MetricsSnapshot) string {
	prompt := RenderPrompt(snapshot)

	var result chatCompletionResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(g.apiKey).
		SetBody(chatCompletionRequest{
			Model:    g.model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		g.logger.Warn("Insight provider call failed", slog.Any("error", err))
		return PlaceholderInsight
	}
	if resp.IsError() {
		g.logger.Warn("Insight provider returned error status",
			slog.Int("status", resp.StatusCode()))
		return PlaceholderInsight
	}

	if len(result.Choices) == 0 {
		g.logger.Warn("Insight provider response missing choices")
		return PlaceholderInsight
	}

	text := strings.TrimSpace(result.Choices[0].Message.Content)
	if text == "" {
		g.logger.Warn("Insight provider response missing content")
		return PlaceholderInsight
	}

	return text
}

// RenderPrompt builds the fixed-structure prompt. Every snapshot field
// appears verbatim so the generated text is auditable against its
// inputs.
func RenderPrompt(snapshot *MetricsSnapshot) string {
	return fmt.Sprintf(`You are a senior AI Business Analyst for Kaira Atelier.

Generate 3-4 concise, actionable insights based on REAL demand signals.

Metrics:
- Total Items: %d
- Available Items: %d
- Sold Items: %d
- Revenue: RM%g
- Weekly Visitors: %d
- Top Collection (Sold): %s
- Top Demand Item: %s

Rules:
- Reference Top Demand Item clearly
- Focus on inventory & conversion actions
- Bullet points only`,
		snapshot.TotalItems,
		snapshot.AvailableItems,
		snapshot.SoldItems,
		snapshot.TotalRevenue,
		snapshot.WeekVisitors,
		snapshot.TopCollection,
		snapshot.TopDemandItem,
	)
}
