package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-scanner/internal/ai"
	"github.com/spigell/resume-scanner/internal/schemas"
	"github.com/spigell/resume-scanner/internal/types"
	"github.com/spigell/resume-scanner/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed prompt.md
var systemPrompt string

const defaultMaxLogLength = 200

// Analyzer scores resumes with a Gemini model. Replies are validated against
// the resume assessment schema before they are trusted.
type Analyzer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Analyzer = (*Analyzer)(nil)

func NewAnalyzer(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Analyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyzer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, resumeText string, candidate types.CandidateFields) (*ai.Assessment, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, errors.New("resume text is required")
	}

	message := buildMessage(resumeText, candidate)

	a.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(message)),
		zap.String("prompt_preview", utils.TruncateForLog(message, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, systemPrompt, message)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	assessment, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	if sum := assessment.Score.Sum(); assessment.Score.Overall != sum {
		a.logger.Debug("overall score does not match its components, using the sum",
			zap.Int("reported", assessment.Score.Overall),
			zap.Int("sum", sum),
		)
		assessment.Score.Overall = sum
	}

	return assessment, nil
}

func buildMessage(resumeText string, candidate types.CandidateFields) string {
	var b strings.Builder

	b.WriteString("Candidate:\n")
	writeLine(&b, "Name", candidate.FullName)
	writeLine(&b, "College", candidate.College)
	writeLine(&b, "Self-reported grade (0-10)", candidate.CGPA)
	writeLine(&b, "Education level", candidate.EducationLevel)
	if candidate.ExperienceYears != nil {
		writeLine(&b, "Years of experience", fmt.Sprintf("%g", *candidate.ExperienceYears))
	}

	b.WriteString("\nResume:\n")
	b.WriteString(resumeText)

	return b.String()
}

func writeLine(b *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

type response struct {
	Scoring             map[string]any `json:"scoring"`
	Summary             string         `json:"summary"`
	Strengths           []string       `json:"strengths"`
	AreasForImprovement []string       `json:"areas_for_improvement"`
}

func parseResponse(raw string) (*ai.Assessment, error) {
	cleaned := extractJSON(raw)

	if err := schemas.ValidateResumeAssessment(cleaned); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrAnalysisParse, err)
	}

	var data response
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrAnalysisParse, err)
	}

	var score types.ResumeScore
	cfg := &mapstructure.DecoderConfig{
		Result:           &score,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("create score decoder: %w", err)
	}
	if err := decoder.Decode(data.Scoring); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrAnalysisParse, err)
	}

	return &ai.Assessment{
		Score: score,
		Insights: types.Insights{
			Summary:             strings.TrimSpace(data.Summary),
			Strengths:           trimAll(data.Strengths),
			AreasForImprovement: trimAll(data.AreasForImprovement),
		},
		Raw: raw,
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
