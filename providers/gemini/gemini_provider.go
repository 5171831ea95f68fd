package gemini

import (
	"context"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"ollamabridge/providers/contracts"
	"ollamabridge/providers/models"
)

// refineSystemPrompt frames the second pass: the remote model receives
// the local model's analysis and returns a cleaned-up version.
const refineSystemPrompt = "You are a senior software engineer. You receive a code analysis report " +
	"produced by a local LLM. Your job is to refine it: remove false positives, " +
	"improve clarity, add actionable suggestions, and re-rank findings by severity. " +
	"Return your refined analysis as Markdown."

const defaultModel = "gemini-2.0-flash"

// GeminiConfig configures the refinement provider.
type GeminiConfig struct {
	APIKey string
	Model  string
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider initializes a refinement provider backed by the
// Gemini API. A missing API key fails before any network call.
func NewGeminiProvider(ctx context.Context, config *GeminiConfig) (contracts.IRefinementProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY not set, export it or pass --gemini-api-key", models.ErrAuth)
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiProvider{client: client, model: model}, nil
}

// Refine sends the analysis to Gemini and returns the refined Markdown.
// Failures are classified into auth/quota/API kinds; there is no retry.
func (g *geminiProvider) Refine(ctx context.Context, analysis string) (string, error) {
	full := refineSystemPrompt + "\n\n---\n\n" + analysis

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		nil,
	)
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: Gemini returned empty output", models.ErrAPI)
	}

	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("%w: Gemini returned empty output", models.ErrAPI)
	}

	return text, nil
}

// classifyError maps a Gemini API failure onto the user-facing error kinds.
func classifyError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "unauthenticated") || strings.Contains(msg, "permission"):
		return fmt.Errorf("%w: %v", models.ErrAuth, err)
	case strings.Contains(msg, "quota") || strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "429"):
		return fmt.Errorf("%w: %v", models.ErrQuota, err)
	default:
		return fmt.Errorf("%w: %v", models.ErrAPI, err)
	}
}
