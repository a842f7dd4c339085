package interfaces

import "context"

// AnalyzeUseCase defines the deployment impact analysis operation. The
// returned string is the analysis report in markdown.
type AnalyzeUseCase interface {
	Analyze(ctx context.Context, prURL string) (string, error)
}
