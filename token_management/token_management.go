package token_management

import (
	"fmt"
	"os"

	"ollamabridge/constants/lipgloss"
	"ollamabridge/token_management/contracts"
)

// TokenManager accumulates token usage reported by the inference endpoint.
type tokenManager struct {
	usedToken       int
	usedInputToken  int
	usedOutputToken int
}

// NewTokenManager creates a new token manager
func NewTokenManager() contracts.ITokenManagement {
	return &tokenManager{}
}

// UsedTokens accumulates the token count for the run.
func (tm *tokenManager) UsedTokens(inputToken int, outputToken int) {
	tm.usedInputToken += inputToken
	tm.usedOutputToken += outputToken
	tm.usedToken += inputToken + outputToken
}

// DisplayTokenUsage prints the run's token usage to stderr; stdout is
// reserved for the analysis Markdown.
func (tm *tokenManager) DisplayTokenUsage(providerName string, modelName string) {
	if tm.usedToken == 0 {
		return
	}

	tokenInfo := fmt.Sprintf("Tokens: %d prompt + %d completion = %d total - Model: %s/%s",
		tm.usedInputToken, tm.usedOutputToken, tm.usedToken, providerName, modelName)

	fmt.Fprintln(os.Stderr, lipgloss.BoxStyle.Render(tokenInfo))
}

func (tm *tokenManager) GetCurrentTokenUsage() (total int, input int, output int) {
	return tm.usedToken, tm.usedInputToken, tm.usedOutputToken
}

func (tm *tokenManager) ClearToken() {
	tm.usedToken = 0
	tm.usedInputToken = 0
	tm.usedOutputToken = 0
}
