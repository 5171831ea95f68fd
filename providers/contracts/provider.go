package contracts

import "context"

// IAnalysisProvider issues one prompt to a model endpoint and returns the
// raw text result.
type IAnalysisProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// IRefinementProvider post-processes an analysis with a second model.
type IRefinementProvider interface {
	Refine(ctx context.Context, analysis string) (string, error)
}
