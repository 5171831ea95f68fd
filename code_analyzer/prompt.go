package code_analyzer

import (
	"fmt"
	"strings"

	"ollamabridge/code_analyzer/models"
)

const (
	analyzePromptHeader   = "You are an expert software reviewer. Analyze the following code."
	analyzePromptGuidance = "Provide findings with severity and suggested fixes."
)

// BuildPrompt assembles the single prompt string sent to the local model.
// It is a pure function of its inputs: the same chunk sequence and focus
// text always produce byte-identical output, which is what makes the
// downstream cache key meaningful.
func BuildPrompt(chunks []models.FileChunk, focus string) string {
	header := analyzePromptHeader
	if focus != "" {
		header += fmt.Sprintf(" Focus on: %s.", focus)
	}

	blocks := []string{header, analyzePromptGuidance}
	for _, chunk := range chunks {
		blocks = append(blocks, fmt.Sprintf("\nFile: %s\n%s", chunk.RelativePath, chunk.Content))
	}

	return strings.Join(blocks, "\n")
}
