package scoring

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-scanner/internal/ai"
)

const defaultGenerativeTimeout = 60 * time.Second

// Fallback reasons reported to the fallback hook.
const (
	ReasonEmptyText     = "empty_text"
	ReasonParseFailed   = "parse_failed"
	ReasonRequestFailed = "request_failed"
)

// Generative scores resumes with a generative analyzer and falls back to
// another scorer whenever the analyzer fails or returns unusable output.
type Generative struct {
	analyzer   ai.Analyzer
	fallback   Scorer
	logger     *zap.Logger
	timeout    time.Duration
	onFallback func(reason string)
}

type Option func(*Generative)

// WithTimeout bounds a single analyzer call.
func WithTimeout(d time.Duration) Option {
	return func(g *Generative) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithFallbackHook registers a callback invoked with the reason of every fallback.
func WithFallbackHook(fn func(reason string)) Option {
	return func(g *Generative) {
		g.onFallback = fn
	}
}

func NewGenerative(analyzer ai.Analyzer, fallback Scorer, logger *zap.Logger, opts ...Option) *Generative {
	if fallback == nil {
		fallback = Heuristic{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Generative{
		analyzer: analyzer,
		fallback: fallback,
		logger:   logger,
		timeout:  defaultGenerativeTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generative) Name() string { return SourceGenerative }

func (g *Generative) Score(ctx context.Context, in Input) (Result, error) {
	if strings.TrimSpace(in.Text) == "" {
		return g.fallbackScore(ctx, in, ReasonEmptyText, nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	assessment, err := g.analyzer.Analyze(callCtx, in.Text, in.Candidate)
	if err != nil {
		reason := ReasonRequestFailed
		if errors.Is(err, ai.ErrAnalysisParse) {
			reason = ReasonParseFailed
		}
		return g.fallbackScore(ctx, in, reason, err)
	}

	insights := assessment.Insights
	return Result{Score: assessment.Score, Source: SourceGenerative, Insights: &insights}, nil
}

func (g *Generative) fallbackScore(ctx context.Context, in Input, reason string, cause error) (Result, error) {
	fields := []zap.Field{zap.String("reason", reason), zap.String("fallback", g.fallback.Name())}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	g.logger.Warn("generative analysis unavailable, using fallback scorer", fields...)

	if g.onFallback != nil {
		g.onFallback(reason)
	}

	return g.fallback.Score(ctx, in)
}
