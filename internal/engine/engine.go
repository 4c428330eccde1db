// Package engine runs a candidate analysis end to end: document text,
// entity extraction, profile signals, resume scoring and job matching.
package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-scanner/internal/document"
	"github.com/spigell/resume-scanner/internal/extract"
	"github.com/spigell/resume-scanner/internal/logger"
	"github.com/spigell/resume-scanner/internal/matching"
	"github.com/spigell/resume-scanner/internal/metrics"
	"github.com/spigell/resume-scanner/internal/profiles"
	"github.com/spigell/resume-scanner/internal/scoring"
	"github.com/spigell/resume-scanner/internal/types"
)

const (
	opAnalyze   = "analyze"
	opRecommend = "recommend"
	opAggregate = "aggregate"
)

type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, formatHint string) (string, error)
}

type ProfileCollector interface {
	Collect(ctx context.Context, accounts types.Accounts) types.ProfileReport
}

type Config struct {
	Matching   matching.Config
	KeyPhrases int
}

// Deps are the collaborators of the engine. Nil entries get working defaults,
// except Documents: without it document uploads are treated as unreadable.
type Deps struct {
	Scorer    scoring.Scorer
	Documents TextExtractor
	Profiles  ProfileCollector
	Matcher   *matching.Matcher
	Metrics   *metrics.Recorder
	Logger    *zap.Logger
}

// Request is one candidate submission. ResumeText takes precedence over Document.
type Request struct {
	Candidate    types.CandidateFields
	ResumeText   string
	Document     []byte
	DocumentName string
	Accounts     types.Accounts
}

type Engine struct {
	cfg       Config
	scorer    scoring.Scorer
	documents TextExtractor
	profiles  ProfileCollector
	matcher   *matching.Matcher
	extractor *extract.Extractor
	metrics   *metrics.Recorder
	logger    *zap.Logger
	newID     func() string
}

func New(cfg Config, deps Deps) *Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	e := &Engine{
		cfg:       cfg,
		scorer:    deps.Scorer,
		documents: deps.Documents,
		profiles:  deps.Profiles,
		matcher:   deps.Matcher,
		extractor: extract.New(),
		metrics:   deps.Metrics,
		logger:    log,
		newID:     uuid.NewString,
	}

	if e.scorer == nil {
		e.scorer = scoring.Heuristic{}
	}
	if e.profiles == nil {
		e.profiles = profiles.NewCollector(nil, nil, log, profiles.WithFallbackHook(e.metrics.ProfileFallback))
	}
	if e.matcher == nil {
		e.matcher = matching.New(nil, matching.WithLogger(log))
	}

	return e
}

// AnalyzeCandidate validates the candidate fields, then extracts, collects and
// scores. Only invalid input and internal faults are returned as errors.
func (e *Engine) AnalyzeCandidate(ctx context.Context, req Request) (analysis *types.Analysis, err error) {
	requestID := e.newID()
	log := logger.WithRequest(e.logger, requestID)

	defer e.observe(opAnalyze, time.Now())
	defer func() {
		if r := recover(); r != nil {
			log.Error("analysis panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			analysis, err = nil, ErrAnalysisFailed
		}
	}()

	if err := req.Candidate.Validate(); err != nil {
		log.Info("rejecting request", zap.Error(err))
		return nil, newValidationError(err)
	}

	log.Info("starting analysis",
		zap.Bool("has_text", strings.TrimSpace(req.ResumeText) != ""),
		zap.Int("document_bytes", len(req.Document)),
		zap.Bool("has_repository", req.Accounts.Repository != ""),
		zap.Bool("has_network", req.Accounts.Network != ""),
	)

	var (
		text   string
		report types.ProfileReport
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return guard(func() { text = e.resumeText(gctx, req, log) })
	})
	g.Go(func() error {
		return guard(func() { report = e.profiles.Collect(gctx, req.Accounts) })
	})
	if err := g.Wait(); err != nil {
		log.Error("analysis branch failed", zap.Error(err))
		return nil, ErrAnalysisFailed
	}

	entities := e.extractor.Extract(extract.CleanText(text))
	metric := scoring.ParseSelfReportedMetric(req.Candidate.CGPA)

	result, err := e.scorer.Score(ctx, scoring.Input{
		Text:               text,
		Entities:           *entities,
		SelfReportedMetric: metric,
		Candidate:          req.Candidate,
	})
	if err != nil {
		log.Error("scoring failed", zap.String("scorer", e.scorer.Name()), zap.Error(err))
		return nil, ErrAnalysisFailed
	}

	e.metrics.AnalysisCompleted(result.Source)

	analysis = &types.Analysis{
		RequestID: requestID,
		Candidate: types.CandidateSummary{
			Name:    req.Candidate.FullName,
			College: req.Candidate.College,
			CGPA:    req.Candidate.CGPA,
			Email:   req.Candidate.Email,
			Phone:   req.Candidate.Phone,
		},
		Resume: types.ResumeAnalysis{
			Entities:      *entities,
			Profile:       BuildProfile(req.Candidate, *entities, metric, report),
			Contact:       extract.ContactInfo(text),
			Metrics:       extract.Metrics(text),
			KeyPhrases:    extract.KeyPhrases(text, e.cfg.KeyPhrases),
			TextAvailable: text != "",
		},
		Profiles:    report,
		Score:       result.Score,
		ScoreSource: result.Source,
		Insights:    result.Insights,
	}

	log.Info("analysis finished",
		zap.String("score_source", result.Source),
		zap.Int("overall_resume_score", result.Score.Overall),
		zap.Int("technical_skills", len(entities.TechnicalSkills)),
	)

	return analysis, nil
}

// resumeText never fails: unreadable documents degrade to empty text.
func (e *Engine) resumeText(ctx context.Context, req Request, log *zap.Logger) string {
	if text := strings.TrimSpace(req.ResumeText); text != "" {
		return text
	}
	if len(req.Document) == 0 {
		return ""
	}

	var (
		text string
		err  error
	)
	if e.documents == nil {
		err = errors.New("no document extractor configured")
	} else {
		text, err = e.documents.ExtractText(ctx, req.Document, req.DocumentName)
	}
	if err != nil {
		log.Warn("document extraction failed, continuing with empty text",
			zap.String("document", req.DocumentName),
			zap.Error(err),
		)
		e.metrics.ExtractionFailed(formatLabel(req.DocumentName))
		return ""
	}

	return text
}

func (e *Engine) observe(op string, start time.Time) {
	e.metrics.ObserveDuration(op, time.Since(start))
}

func formatLabel(hint string) string {
	format, err := document.DetectFormat(hint)
	if err != nil {
		return "unsupported"
	}
	return string(format)
}

func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}
