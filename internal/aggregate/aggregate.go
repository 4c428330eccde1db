// Package aggregate combines resume, profile and human evaluation scores
// into a single graded career score.
package aggregate

import (
	"fmt"
	"maps"
	"math"

	"github.com/spigell/resume-scanner/internal/types"
)

// Weights of each component. They sum to 1.
var Weights = map[string]float64{
	types.ComponentResume:          0.25,
	types.ComponentRepository:      0.15,
	types.ComponentNetwork:         0.10,
	types.ComponentGroupDiscussion: 0.15,
	types.ComponentAptitude:        0.15,
	types.ComponentTechnical:       0.15,
	types.ComponentAcademic:        0.05,
}

// components fixes the summation order.
var components = []string{
	types.ComponentResume,
	types.ComponentRepository,
	types.ComponentNetwork,
	types.ComponentGroupDiscussion,
	types.ComponentAptitude,
	types.ComponentTechnical,
	types.ComponentAcademic,
}

type band struct {
	min            float64
	grade          types.Grade
	recommendation string
}

var bands = []band{
	{90, types.GradeAPlus, "Outstanding candidate - highly recommended for immediate hire"},
	{80, types.GradeA, "Excellent candidate - strongly recommended"},
	{70, types.GradeBPlus, "Good candidate - recommended with minor reservations"},
	{60, types.GradeB, "Satisfactory candidate - consider for the role"},
	{50, types.GradeC, "Average candidate - requires further evaluation"},
	{math.Inf(-1), types.GradeD, "Below expectations - not recommended at this time"},
}

// Validate checks that every human evaluation score lies in [0, 100].
func Validate(eval *types.HumanEvaluation) error {
	if eval == nil {
		return nil
	}
	if err := eval.Validate(); err != nil {
		return fmt.Errorf("invalid human evaluation: %w", err)
	}
	return nil
}

// Compute returns the weighted career score. Missing profile signals and a
// nil evaluation count as zero. Inputs are clamped to [0, 100].
func Compute(resumeScore float64, signals types.ProfileSignals, eval *types.HumanEvaluation) types.AggregateScore {
	var human types.HumanEvaluation
	if eval != nil {
		human = *eval
	}

	breakdown := map[string]float64{
		types.ComponentResume:          clamp(resumeScore),
		types.ComponentRepository:      clamp(signals.RepositoryScore()),
		types.ComponentNetwork:         clamp(signals.NetworkScore()),
		types.ComponentGroupDiscussion: clamp(human.GroupDiscussion),
		types.ComponentAptitude:        clamp(human.Aptitude),
		types.ComponentTechnical:       clamp(human.Technical),
		types.ComponentAcademic:        clamp(human.Academic),
	}

	total := 0.0
	for _, name := range components {
		total += breakdown[name] * Weights[name]
	}
	overall := round2(total)

	grade, recommendation := GradeFor(overall)

	return types.AggregateScore{
		Overall:        overall,
		Breakdown:      breakdown,
		Weights:        maps.Clone(Weights),
		Grade:          grade,
		Recommendation: recommendation,
	}
}

// GradeFor maps an overall score to its grade and recommendation sentence.
func GradeFor(score float64) (types.Grade, string) {
	for _, b := range bands {
		if score >= b.min {
			return b.grade, b.recommendation
		}
	}
	last := bands[len(bands)-1]
	return last.grade, last.recommendation
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
