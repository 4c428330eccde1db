package ai

import (
	"context"
	"errors"

	"github.com/spigell/resume-scanner/internal/types"
)

// ErrAnalysisParse is returned when a generative model replies with output
// that does not match the resume assessment schema.
var ErrAnalysisParse = errors.New("analysis output does not match the resume assessment schema")

// Assessment is the structured result of a generative resume analysis.
type Assessment struct {
	Score    types.ResumeScore
	Insights types.Insights
	Raw      string
}

// Analyzer produces a resume assessment from free text.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText string, candidate types.CandidateFields) (*Assessment, error)
}
