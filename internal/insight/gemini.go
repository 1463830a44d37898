package insight

import (
	"context"
	"fmt"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/order"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-3-flash-preview"

// Gemini is the Summarizer backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Summarize(ctx context.Context, orders []*order.Order, inventory []*catalog.InventoryItem) (string, error) {
	prompt, err := OperationsPrompt(orders, inventory)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, prompt)
}

func (g *Gemini) SummarizeMenu(ctx context.Context, menu []*catalog.MenuItem) (string, error) {
	prompt, err := MenuPrompt(menu)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, prompt)
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
