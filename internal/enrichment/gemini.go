package enrichment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talentbridge/internal/config"

	"google.golang.org/genai"
)

// GeminiGenerator talks to the Gemini API. One instance is shared across the
// process; the underlying client is safe for concurrent use.
type GeminiGenerator struct {
	client     *genai.Client
	model      string
	embedModel string
}

func NewGeminiGenerator(ctx context.Context, cfg config.GeminiConfig) (*GeminiGenerator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiGenerator{
		client:     client,
		model:      cfg.Model,
		embedModel: cfg.EmbedModel,
	}, nil
}

func (g *GeminiGenerator) GenerateSummary(ctx context.Context, e Entity) (string, error) {
	var prompt string
	switch e.Kind {
	case KindJob:
		prompt = fmt.Sprintf("Write a short 2-3 sentence summary of the following job posting for a candidate deciding whether to apply:\n\n%s", e.Text)
	default:
		prompt = fmt.Sprintf("Write a short 2-3 sentence summary of the skill %q for someone deciding whether to learn it.", e.Text)
	}
	return g.generate(ctx, prompt)
}

func (g *GeminiGenerator) GenerateKeywords(ctx context.Context, e Entity) (string, error) {
	var prompt string
	switch e.Kind {
	case KindJob:
		prompt = fmt.Sprintf("List 5-8 comma-separated lowercase keywords for this job posting. Return only the keywords:\n\n%s", e.Text)
	default:
		prompt = fmt.Sprintf("List 5-8 comma-separated lowercase keywords related to the skill %q. Return only the keywords.", e.Text)
	}
	out, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return cleanKeywords(out), nil
}

func (g *GeminiGenerator) EmbedText(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text must not be empty")
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini api returned empty embedding")
	}
	return resp.Embeddings[0].Values, nil
}

func (g *GeminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text)
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return out, nil
}

// cleanKeywords normalizes model output into a flat comma-separated list,
// stripping bullets and surrounding markup the model sometimes adds.
func cleanKeywords(raw string) string {
	raw = strings.ReplaceAll(raw, "\n", ",")
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimLeft(p, "-*• \t")
		p = strings.Trim(p, "`\"'.")
		if p == "" {
			continue
		}
		out = append(out, strings.ToLower(p))
	}
	return strings.Join(out, ", ")
}
