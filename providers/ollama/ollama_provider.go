package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ollamabridge/providers/contracts"
	"ollamabridge/providers/models"
	ollama_models "ollamabridge/providers/ollama/models"
	contracts2 "ollamabridge/token_management/contracts"
)

// OllamaConfig implements the analysis provider against a local Ollama endpoint.
type OllamaConfig struct {
	BaseURL         string
	Model           string
	TokenManagement contracts2.ITokenManagement
}

const defaultBaseURL = "http://localhost:11434"

// NewOllamaProvider initializes an Ollama analysis provider.
func NewOllamaProvider(config *OllamaConfig) contracts.IAnalysisProvider {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OllamaConfig{
		BaseURL:         baseURL,
		Model:           config.Model,
		TokenManagement: config.TokenManagement,
	}
}

// Generate sends the prompt to /api/generate (non-streaming) and returns
// the raw result text. An unreachable endpoint is reported as a
// connection error; there is no automatic retry.
func (ollamaProvider *OllamaConfig) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := ollama_models.OllamaGenerateRequest{
		Model:  ollamaProvider.Model,
		Prompt: prompt,
		Stream: false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/api/generate", ollamaProvider.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("request canceled: %w", ctx.Err())
		}
		return "", fmt.Errorf("%w: %v (is Ollama running at %s?)", models.ErrConnection, err, ollamaProvider.BaseURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiError models.AIError
		if err := json.Unmarshal(body, &apiError); err == nil && apiError.Error.Message != "" {
			return "", fmt.Errorf("%w: status %d - %s", models.ErrAPI, resp.StatusCode, apiError.Error.Message)
		}
		return "", fmt.Errorf("%w: status %d", models.ErrAPI, resp.StatusCode)
	}

	var response ollama_models.OllamaGenerateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("%w: error unmarshalling response: %v", models.ErrAPI, err)
	}

	if response.Response == nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return "", fmt.Errorf("%w: unexpected Ollama response: %s", models.ErrAPI, preview)
	}

	if response.PromptEvalCount > 0 && ollamaProvider.TokenManagement != nil {
		ollamaProvider.TokenManagement.UsedTokens(response.PromptEvalCount, response.EvalCount)
	}

	return *response.Response, nil
}
