package models

// OllamaGenerateRequest is the body for POST /api/generate.
type OllamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// OllamaGenerateResponse is the non-streaming /api/generate response.
// Response is a pointer so a missing field can be told apart from an
// empty result. PromptEvalCount and EvalCount carry token usage.
type OllamaGenerateResponse struct {
	Model           string  `json:"model"`
	Response        *string `json:"response"`
	Done            bool    `json:"done"`
	PromptEvalCount int     `json:"prompt_eval_count"`
	EvalCount       int     `json:"eval_count"`
}
