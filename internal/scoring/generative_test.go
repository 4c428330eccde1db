package scoring

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-scanner/internal/ai"
	"github.com/spigell/resume-scanner/internal/types"
)

type stubAnalyzer struct {
	assessment *ai.Assessment
	err        error
	block      bool
	calls      int
}

func (s *stubAnalyzer) Analyze(ctx context.Context, _ string, _ types.CandidateFields) (*ai.Assessment, error) {
	s.calls++
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.assessment, s.err
}

func generativeInput() Input {
	return Input{
		Text:               "Go developer with 3 years of experience",
		Entities:           entities(3, 1, 2, 1, 0),
		SelfReportedMetric: ptr(8),
	}
}

func TestGenerativeUsesAnalyzerResult(t *testing.T) {
	score := types.ResumeScore{TechnicalSkills: 20, SoftSkills: 10, Experience: 10, Projects: 10, Achievements: 5, Education: 8, Overall: 63}
	analyzer := &stubAnalyzer{assessment: &ai.Assessment{
		Score:    score,
		Insights: types.Insights{Summary: "strong backend profile"},
	}}

	g := NewGenerative(analyzer, Heuristic{}, zap.NewNop())
	res, err := g.Score(context.Background(), generativeInput())
	require.NoError(t, err)

	assert.Equal(t, SourceGenerative, res.Source)
	assert.Equal(t, score, res.Score)
	require.NotNil(t, res.Insights)
	assert.Equal(t, "strong backend profile", res.Insights.Summary)
}

func TestGenerativeFallsBack(t *testing.T) {
	cases := []struct {
		name     string
		analyzer *stubAnalyzer
		text     string
		reason   string
		calls    int
	}{
		{
			name:     "parse failure",
			analyzer: &stubAnalyzer{err: fmt.Errorf("decode: %w", ai.ErrAnalysisParse)},
			text:     "resume",
			reason:   ReasonParseFailed,
			calls:    1,
		},
		{
			name:     "request failure",
			analyzer: &stubAnalyzer{err: errors.New("connection refused")},
			text:     "resume",
			reason:   ReasonRequestFailed,
			calls:    1,
		},
		{
			name:     "timeout",
			analyzer: &stubAnalyzer{block: true},
			text:     "resume",
			reason:   ReasonRequestFailed,
			calls:    1,
		},
		{
			name:     "empty text",
			analyzer: &stubAnalyzer{},
			text:     "  ",
			reason:   ReasonEmptyText,
			calls:    0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			var reasons []string

			g := NewGenerative(tc.analyzer, Heuristic{}, zap.New(core),
				WithTimeout(10*time.Millisecond),
				WithFallbackHook(func(reason string) { reasons = append(reasons, reason) }),
			)

			in := generativeInput()
			in.Text = tc.text

			res, err := g.Score(context.Background(), in)
			require.NoError(t, err)

			assert.Equal(t, SourceHeuristic, res.Source)
			assert.Equal(t, Compute(in.Entities, in.SelfReportedMetric), res.Score)
			assert.Nil(t, res.Insights)
			assert.Equal(t, []string{tc.reason}, reasons)
			assert.Equal(t, tc.calls, tc.analyzer.calls)

			entries := logs.FilterField(zap.String("reason", tc.reason)).All()
			require.Len(t, entries, 1)
			assert.Equal(t, "generative analysis unavailable, using fallback scorer", entries[0].Message)
		})
	}
}
