package port

import "context"

// RugPhoto is one photo handed to the analyzer.
type RugPhoto struct {
	Bytes       []byte
	ContentType string
	Label       string
}

// AnalyzeInput describes a job to inspect.
type AnalyzeInput struct {
	Photos    []RugPhoto
	RugNotes  string
	JobNumber string
}

// AnalyzeOutput is the analyzer's free-form inspection report.
type AnalyzeOutput struct {
	ReportText string
	ModelUsed  string
	PromptUsed string
}

// ReportAnalyzer defines the contract for AI inspection report generation.
type ReportAnalyzer interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error)
}
