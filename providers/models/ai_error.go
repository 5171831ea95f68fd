package models

import "errors"

// Error kinds surfaced to the user. Callers classify with errors.Is; the
// wrapped message carries the remediation hint.
var (
	ErrNoFilesMatched = errors.New("no files matched")
	ErrConnection     = errors.New("inference endpoint unreachable")
	ErrAuth           = errors.New("missing or invalid API credential")
	ErrQuota          = errors.New("API quota exceeded")
	ErrAPI            = errors.New("API request failed")
)

// AIError is the error envelope returned by provider HTTP APIs.
type AIError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
