package scoring

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/spigell/resume-scanner/internal/types"
)

const (
	SourceHeuristic  = "heuristic"
	SourceGenerative = "generative"
)

// Category caps. They sum to 100.
const (
	MaxTechnicalSkills = 25
	MaxSoftSkills      = 15
	MaxExperience      = 20
	MaxProjects        = 20
	MaxAchievements    = 10
	MaxEducation       = 10

	// DefaultEducationScore applies when no usable self-reported metric exists.
	DefaultEducationScore = 5
	// MetricScale is the upper bound of the self-reported metric (a 10-point grade average).
	MetricScale = 10.0
)

// Input is everything a scorer may look at for one resume.
type Input struct {
	// Text is the extracted resume text before cleaning. It may be empty.
	Text               string
	Entities           types.ResumeEntities
	SelfReportedMetric *float64
	Candidate          types.CandidateFields
}

type Result struct {
	Score    types.ResumeScore
	Source   string
	Insights *types.Insights
}

// Scorer turns a resume into the six category sub-scores and an overall score.
type Scorer interface {
	Name() string
	Score(ctx context.Context, in Input) (Result, error)
}

// Heuristic scores resumes from extracted entity counts. It never fails.
type Heuristic struct{}

func (Heuristic) Name() string { return SourceHeuristic }

func (Heuristic) Score(_ context.Context, in Input) (Result, error) {
	return Result{Score: Compute(in.Entities, in.SelfReportedMetric), Source: SourceHeuristic}, nil
}

// Compute derives the resume score from entity counts and the optional self-reported metric.
func Compute(entities types.ResumeEntities, metric *float64) types.ResumeScore {
	score := types.ResumeScore{
		TechnicalSkills: capped(3*len(entities.TechnicalSkills), MaxTechnicalSkills),
		SoftSkills:      capped(2*len(entities.SoftSkills), MaxSoftSkills),
		Experience:      capped(4*len(entities.Experience), MaxExperience),
		Projects:        capped(4*len(entities.Projects), MaxProjects),
		Achievements:    capped(2*len(entities.Achievements), MaxAchievements),
		Education:       EducationScore(metric),
	}
	score.Overall = score.Sum()
	return score
}

// EducationScore maps a 0-10 metric onto the education category.
func EducationScore(metric *float64) int {
	if metric == nil || math.IsNaN(*metric) || math.IsInf(*metric, 0) {
		return DefaultEducationScore
	}
	return capped(int(math.Round(MaxEducation*(*metric)/MetricScale)), MaxEducation)
}

// ParseSelfReportedMetric parses a grade average such as "8.4" or "8,4".
// Values outside [0, 10] and unparsable input yield nil.
func ParseSelfReportedMetric(raw string) *float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > MetricScale {
		return nil
	}
	return &v
}

func capped(v, limit int) int {
	return max(0, min(v, limit))
}
