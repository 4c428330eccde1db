package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-scanner/internal/aggregate"
	"github.com/spigell/resume-scanner/internal/types"
)

// RecommendOptions override the configured matching settings for one call.
type RecommendOptions struct {
	MaxResults   int
	MinThreshold *float64
	// SkillGaps adds a gap report for TargetRoles, or the top matches when empty.
	SkillGaps   bool
	TargetRoles []string
}

type Recommendations struct {
	Matches   []types.MatchResult   `json:"job_recommendations"`
	SkillGaps *types.SkillGapReport `json:"skill_gaps,omitempty"`
}

func (e *Engine) RecommendJobs(ctx context.Context, profile types.CandidateProfile, opts RecommendOptions) (*Recommendations, error) {
	defer e.observe(opRecommend, time.Now())

	cfg := e.cfg.Matching
	if opts.MaxResults > 0 {
		cfg.MaxResults = opts.MaxResults
	}
	if opts.MinThreshold != nil {
		cfg.MinThreshold = *opts.MinThreshold
	}

	matches, err := e.matcher.RecommendWith(ctx, profile, &cfg)
	if err != nil {
		return nil, err
	}
	out := &Recommendations{Matches: matches}

	if opts.SkillGaps {
		report, err := e.matcher.AnalyzeSkillGaps(ctx, profile, opts.TargetRoles)
		if err != nil {
			return nil, err
		}
		out.SkillGaps = &report
	}

	e.logger.Debug("recommendations ready",
		zap.Int("matches", len(matches)),
		zap.Bool("skill_gaps", out.SkillGaps != nil),
	)

	return out, nil
}

// ComputeAggregateScore rejects out-of-range evaluation scores; everything
// else is clamped by the calculator.
func (e *Engine) ComputeAggregateScore(resumeScore float64, signals types.ProfileSignals, eval *types.HumanEvaluation) (types.AggregateScore, error) {
	defer e.observe(opAggregate, time.Now())

	if err := aggregate.Validate(eval); err != nil {
		return types.AggregateScore{}, newValidationError(err)
	}

	return aggregate.Compute(resumeScore, signals, eval), nil
}
