package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-scanner/internal/aggregate"
	"github.com/spigell/resume-scanner/internal/catalog"
	"github.com/spigell/resume-scanner/internal/metrics"
	"github.com/spigell/resume-scanner/internal/scoring"
	"github.com/spigell/resume-scanner/internal/types"
)

const sampleResume = `Jane Doe. jane.doe@example.com
Python developer with 4 years of experience at Acme.
Built a payments web application used by thousands of customers.
Won the regional hackathon award.
Master of Science in Computer Science.`

type stubScorer struct {
	mu     sync.Mutex
	calls  int
	err    error
	panics bool
	inputs []scoring.Input
}

func (s *stubScorer) Name() string { return "stub" }

func (s *stubScorer) Score(_ context.Context, in scoring.Input) (scoring.Result, error) {
	s.mu.Lock()
	s.calls++
	s.inputs = append(s.inputs, in)
	s.mu.Unlock()

	if s.panics {
		panic("scorer exploded")
	}
	if s.err != nil {
		return scoring.Result{}, s.err
	}
	return scoring.Result{Score: types.ResumeScore{TechnicalSkills: 10, Overall: 10}, Source: "stub"}, nil
}

type stubDocuments struct {
	text string
	err  error
}

func (s stubDocuments) ExtractText(context.Context, []byte, string) (string, error) {
	return s.text, s.err
}

type panickingCollector struct{}

func (panickingCollector) Collect(context.Context, types.Accounts) types.ProfileReport {
	panic("collector exploded")
}

func validFields() types.CandidateFields {
	return types.CandidateFields{
		FullName: "Jane Doe",
		Email:    "jane.doe@example.com",
		College:  "State University",
		CGPA:     "8.7",
	}
}

func counter(t *testing.T, rec *metrics.Recorder, name, label string) float64 {
	t.Helper()
	families, err := rec.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func newTestEngine(deps Deps) *Engine {
	e := New(Config{}, deps)
	e.newID = func() string { return "req-1" }
	return e
}

func TestAnalyzeCandidateRejectsMissingFields(t *testing.T) {
	scorer := &stubScorer{}
	e := newTestEngine(Deps{Scorer: scorer})

	_, err := e.AnalyzeCandidate(context.Background(), Request{
		Candidate:  types.CandidateFields{Email: "broken"},
		ResumeText: sampleResume,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Rule
	}
	assert.Equal(t, map[string]string{"full_name": "required", "email": "email", "college": "required"}, fields)
	assert.Contains(t, err.Error(), "full_name (required)")
	assert.Zero(t, scorer.calls)
}

func TestAnalyzeCandidateHeuristic(t *testing.T) {
	rec := metrics.New()
	e := newTestEngine(Deps{Metrics: rec})

	analysis, err := e.AnalyzeCandidate(context.Background(), Request{
		Candidate:  validFields(),
		ResumeText: sampleResume,
	})
	require.NoError(t, err)

	assert.Equal(t, "req-1", analysis.RequestID)
	assert.Equal(t, "Jane Doe", analysis.Candidate.Name)
	assert.Equal(t, scoring.SourceHeuristic, analysis.ScoreSource)
	assert.Nil(t, analysis.Insights)
	assert.Equal(t, analysis.Score.Sum(), analysis.Score.Overall)
	assert.Equal(t, 9, analysis.Score.Education)

	resume := analysis.Resume
	assert.True(t, resume.TextAvailable)
	assert.Contains(t, resume.Entities.TechnicalSkills, "Python")
	assert.Equal(t, "jane.doe@example.com", resume.Contact.Email)
	assert.Positive(t, resume.Metrics.TotalWords)
	assert.NotEmpty(t, resume.KeyPhrases)

	profile := resume.Profile
	assert.Equal(t, 4.0, profile.ExperienceYears)
	assert.Equal(t, types.EducationMaster, profile.EducationLevel)
	require.NotNil(t, profile.SelfReportedMetric)
	assert.Equal(t, 8.7, *profile.SelfReportedMetric)

	assert.Nil(t, analysis.Profiles.Signals.Repository)
	assert.Nil(t, analysis.Profiles.Signals.Network)
	assert.Equal(t, 1.0, counter(t, rec, "resume_scanner_analyses_total", scoring.SourceHeuristic))
}

func TestAnalyzeCandidateIsDeterministic(t *testing.T) {
	e := newTestEngine(Deps{})
	req := Request{Candidate: validFields(), ResumeText: sampleResume}

	first, err := e.AnalyzeCandidate(context.Background(), req)
	require.NoError(t, err)
	second, err := e.AnalyzeCandidate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeCandidateExtractionFailureDegrades(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := metrics.New()
	scorer := &stubScorer{}
	e := newTestEngine(Deps{
		Scorer:    scorer,
		Documents: stubDocuments{err: errors.New("corrupt xref table")},
		Metrics:   rec,
		Logger:    zap.New(core),
	})

	analysis, err := e.AnalyzeCandidate(context.Background(), Request{
		Candidate:    validFields(),
		Document:     []byte("%PDF"),
		DocumentName: "resume.pdf",
	})
	require.NoError(t, err)

	assert.False(t, analysis.Resume.TextAvailable)
	assert.Empty(t, analysis.Resume.Entities.TechnicalSkills)
	require.Len(t, scorer.inputs, 1)
	assert.Empty(t, scorer.inputs[0].Text)

	entries := logs.FilterMessage("document extraction failed, continuing with empty text").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	assert.Equal(t, 1.0, counter(t, rec, "resume_scanner_extraction_failures_total", "pdf"))
}

func TestAnalyzeCandidateUsesDocumentText(t *testing.T) {
	e := newTestEngine(Deps{Documents: stubDocuments{text: sampleResume}})

	analysis, err := e.AnalyzeCandidate(context.Background(), Request{
		Candidate:    validFields(),
		Document:     []byte("binary"),
		DocumentName: "resume.docx",
	})
	require.NoError(t, err)
	assert.True(t, analysis.Resume.TextAvailable)
	assert.Contains(t, analysis.Resume.Entities.TechnicalSkills, "Python")
}

func TestAnalyzeCandidateFallbackSignals(t *testing.T) {
	rec := metrics.New()
	e := newTestEngine(Deps{Metrics: rec})

	analysis, err := e.AnalyzeCandidate(context.Background(), Request{
		Candidate:  validFields(),
		ResumeText: sampleResume,
		Accounts:   types.Accounts{Repository: "octocat", Network: "https://linkedin.com/in/octo"},
	})
	require.NoError(t, err)

	signals := analysis.Profiles.Signals
	require.NotNil(t, signals.Repository)
	require.NotNil(t, signals.Network)
	assert.True(t, signals.Repository.Fallback)
	assert.Equal(t, 30.0, signals.Repository.SubScore)
	assert.Equal(t, 40.0, signals.Network.SubScore)
	assert.Equal(t, 1.0, counter(t, rec, "resume_scanner_profile_fallbacks_total", types.SourceRepository))
	assert.Equal(t, 1.0, counter(t, rec, "resume_scanner_profile_fallbacks_total", types.SourceNetwork))
}

func TestAnalyzeCandidateInternalFaults(t *testing.T) {
	cases := map[string]Deps{
		"scorer error":    {Scorer: &stubScorer{err: errors.New("boom")}},
		"scorer panic":    {Scorer: &stubScorer{panics: true}},
		"collector panic": {Profiles: panickingCollector{}},
	}

	for name, deps := range cases {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			deps.Logger = zap.New(core)
			e := newTestEngine(deps)

			analysis, err := e.AnalyzeCandidate(context.Background(), Request{
				Candidate:  validFields(),
				ResumeText: sampleResume,
			})

			assert.Nil(t, analysis)
			assert.ErrorIs(t, err, ErrAnalysisFailed)
			assert.Equal(t, "analysis failed", err.Error())
			assert.NotZero(t, logs.Len())
		})
	}
}

func TestBuildProfile(t *testing.T) {
	seven := 7.0
	entities := types.ResumeEntities{
		TechnicalSkills: []string{"Go"},
		Experience:      []types.ExperienceMention{{Description: "backend role for 3 years", Timeframe: "3 years"}},
		Education:       []types.EducationMention{{Degree: "PhD"}},
		Projects:        []string{"built a scheduler"},
	}

	inferred := BuildProfile(types.CandidateFields{}, entities, nil, types.ProfileReport{})
	assert.Equal(t, 3.0, inferred.ExperienceYears)
	assert.Equal(t, types.EducationPhD, inferred.EducationLevel)
	assert.Equal(t, 1, inferred.ProjectCount)

	reported := BuildProfile(
		types.CandidateFields{ExperienceYears: &seven, EducationLevel: "High School"},
		entities,
		nil,
		types.ProfileReport{Repository: &types.RepositoryData{PublicRepos: 12}},
	)
	assert.Equal(t, 7.0, reported.ExperienceYears)
	assert.Equal(t, types.EducationHighSchool, reported.EducationLevel)
	assert.Equal(t, 12, reported.ProjectCount)

	empty := BuildProfile(types.CandidateFields{}, types.ResumeEntities{}, nil, types.ProfileReport{})
	assert.Equal(t, types.EducationBachelor, empty.EducationLevel)
	assert.Zero(t, empty.ExperienceYears)

	reported.TechnicalSkills[0] = "Rust"
	assert.Equal(t, "Go", entities.TechnicalSkills[0])
}

func TestBuildProfileMergesRepositoryLanguages(t *testing.T) {
	entities := types.ResumeEntities{TechnicalSkills: []string{"SQL", "python"}}
	report := types.ProfileReport{Repository: &types.RepositoryData{
		Languages: map[string]int{"Python": 3, "JavaScript": 1, "Go": 2},
	}}

	profile := BuildProfile(types.CandidateFields{}, entities, nil, report)
	assert.Equal(t, []string{"SQL", "python", "Go", "JavaScript"}, profile.TechnicalSkills)
	assert.Equal(t, []string{"SQL", "python"}, entities.TechnicalSkills)

	resumeOnly := BuildProfile(types.CandidateFields{}, entities, nil, types.ProfileReport{})
	assert.Equal(t, []string{"SQL", "python"}, resumeOnly.TechnicalSkills)
}

func TestRecommendJobs(t *testing.T) {
	e := New(Config{}, Deps{})
	profile := types.CandidateProfile{
		TechnicalSkills: []string{"Python", "SQL", "Machine Learning", "Statistics", "Pandas", "NumPy"},
		SoftSkills:      []string{"Communication", "Problem Solving"},
		ExperienceYears: 3,
		EducationLevel:  types.EducationMaster,
		ProjectCount:    4,
	}

	recs, err := e.RecommendJobs(context.Background(), profile, RecommendOptions{MaxResults: 3})
	require.NoError(t, err)
	require.NotEmpty(t, recs.Matches)
	assert.LessOrEqual(t, len(recs.Matches), 3)
	assert.Nil(t, recs.SkillGaps)
	for i, m := range recs.Matches {
		assert.GreaterOrEqual(t, m.MatchPercentage, 30)
		if i > 0 {
			assert.GreaterOrEqual(t, recs.Matches[i-1].MatchPercentage, m.MatchPercentage)
		}
	}

	perfect := 1.0
	recs, err = e.RecommendJobs(context.Background(), profile, RecommendOptions{MinThreshold: &perfect})
	require.NoError(t, err)
	for _, m := range recs.Matches {
		assert.Equal(t, 100, m.MatchPercentage)
	}

	outOfRange := 1.01
	_, err = e.RecommendJobs(context.Background(), profile, RecommendOptions{MinThreshold: &outOfRange})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside [0, 1]")
}

func TestRecommendJobsSkillGaps(t *testing.T) {
	e := New(Config{}, Deps{})
	profile := types.CandidateProfile{TechnicalSkills: []string{"Python"}, EducationLevel: types.EducationBachelor}

	recs, err := e.RecommendJobs(context.Background(), profile, RecommendOptions{
		SkillGaps:   true,
		TargetRoles: []string{"Data Scientist"},
	})
	require.NoError(t, err)
	require.NotNil(t, recs.SkillGaps)
	assert.Equal(t, []string{"Data Scientist"}, recs.SkillGaps.TargetRoles)
	assert.NotContains(t, recs.SkillGaps.MissingRequiredSkills, "Python")

	_, err = e.RecommendJobs(context.Background(), profile, RecommendOptions{
		SkillGaps:   true,
		TargetRoles: []string{"Astronaut"},
	})
	assert.ErrorIs(t, err, catalog.ErrUnknownRole)
}

func TestComputeAggregateScore(t *testing.T) {
	e := New(Config{}, Deps{})
	signals := types.ProfileSignals{Repository: &types.ProfileSignal{SubScore: 60}}
	eval := &types.HumanEvaluation{GroupDiscussion: 70, Aptitude: 80, Technical: 90, Academic: 60}

	got, err := e.ComputeAggregateScore(72, signals, eval)
	require.NoError(t, err)
	assert.Equal(t, aggregate.Compute(72, signals, eval), got)

	_, err = e.ComputeAggregateScore(72, signals, &types.HumanEvaluation{Aptitude: 120})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []FieldError{{Field: "aptitude", Rule: "lte"}}, verr.Fields)
}
