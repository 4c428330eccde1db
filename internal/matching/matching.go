// Package matching scores candidate profiles against the job role catalog.
package matching

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"go.uber.org/zap"

	"github.com/spigell/resume-scanner/internal/catalog"
	"github.com/spigell/resume-scanner/internal/types"
)

const (
	DefaultMaxResults   = 5
	DefaultMinThreshold = 0.30

	requiredShare  = 0.7
	preferredShare = 0.3

	portfolioTarget       = 5
	portfolioDefault      = 0.3
	educationDefault      = 0.5
	belowRangeFloor       = 0.3
	aboveRangeFloor       = 0.7
	displayedSkillsPerSet = 5
)

// Weights of each factor in the overall match score. They sum to 1.
var Weights = map[string]float64{
	types.FactorTechnicalSkills: 0.40,
	types.FactorExperience:      0.25,
	types.FactorEducation:       0.15,
	types.FactorPortfolio:       0.10,
	types.FactorSoftSkills:      0.10,
}

type yearsRange struct {
	low, high float64
}

var bandRanges = map[types.ExperienceBand]yearsRange{
	types.BandEntry:  {0, 2},
	types.BandMid:    {2, 5},
	types.BandSenior: {5, 10},
}

var educationScores = map[types.EducationLevel]float64{
	types.EducationHighSchool: 0.3,
	types.EducationAssociate:  0.5,
	types.EducationBachelor:   0.8,
	types.EducationMaster:     1.0,
	types.EducationPhD:        1.0,
}

// Matcher evaluates profiles against a catalog. It holds no per-request state.
type Matcher struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

type Option func(*Matcher)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func New(cat *catalog.Catalog, opts ...Option) *Matcher {
	if cat == nil {
		cat = catalog.Default()
	}

	m := &Matcher{catalog: cat, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match computes the factor vector of profile against role.
func (m *Matcher) Match(profile types.CandidateProfile, role types.JobRole) types.MatchFactors {
	return types.MatchFactors{
		TechnicalSkills: m.technical(skillSet(profile.TechnicalSkills), role),
		Experience:      experienceFactor(profile.ExperienceYears, role.ExperienceBand),
		Education:       educationFactor(profile.EducationLevel),
		Portfolio:       portfolioFactor(profile.ProjectCount),
		SoftSkills:      m.softSkills(skillSet(profile.SoftSkills)),
	}
}

// Overall is the weighted sum of the factors.
func Overall(f types.MatchFactors) float64 {
	total := f.TechnicalSkills*Weights[types.FactorTechnicalSkills] +
		f.Experience*Weights[types.FactorExperience] +
		f.Education*Weights[types.FactorEducation] +
		f.Portfolio*Weights[types.FactorPortfolio] +
		f.SoftSkills*Weights[types.FactorSoftSkills]
	return clamp(total)
}

// ConfidenceFor derives the confidence label from the overall score and the
// technical factor.
func ConfidenceFor(overall, technical float64) types.Confidence {
	switch {
	case overall >= 0.8 && technical >= 0.7:
		return types.ConfidenceVeryHigh
	case overall >= 0.6 && technical >= 0.5:
		return types.ConfidenceHigh
	case overall >= 0.4:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// Evaluate builds the full match result of profile against role.
func (m *Matcher) Evaluate(profile types.CandidateProfile, role types.JobRole) Candidate {
	factors := m.Match(profile, role)
	overall := Overall(factors)
	candidateSkills := skillSet(profile.TechnicalSkills)
	roleSkills := uniqueSkills(append(append([]string{}, role.RequiredSkills...), role.PreferredSkills...))

	breakdown := make(map[string]int, len(Weights))
	for name, value := range factors.Map() {
		breakdown[name] = percent(value)
	}

	result := types.MatchResult{
		JobTitle:         role.Title,
		Category:         role.Category,
		MatchPercentage:  percent(overall),
		Confidence:       ConfidenceFor(overall, factors.TechnicalSkills),
		MatchBreakdown:   breakdown,
		Feedback:         feedback(factors, role, candidateSkills),
		NextSteps:        nextSteps(factors, role),
		Description:      role.Description,
		CompensationBand: role.CompensationBand,
		ExperienceLevel:  role.ExperienceLevel,
		GrowthPotential:  role.GrowthPotential,
		RequiredSkills:   head(role.RequiredSkills, displayedSkillsPerSet),
		PreferredSkills:  head(role.PreferredSkills, displayedSkillsPerSet),
		MatchedSkills: slice.FindAll(roleSkills, func(skill string) bool {
			return candidateSkills[normalize(skill)]
		}),
	}

	return Candidate{Result: result, Score: overall, Factors: factors}
}

// Recommend scores every catalog role and returns the best matches, ordered by
// match percentage then confidence. Roles below minThreshold never appear.
func (m *Matcher) Recommend(ctx context.Context, profile types.CandidateProfile, maxResults int, minThreshold float64) ([]types.MatchResult, error) {
	return m.RecommendWith(ctx, profile, &Config{MaxResults: maxResults, MinThreshold: minThreshold})
}

// RecommendWith is Recommend with category and title filters applied.
func (m *Matcher) RecommendWith(ctx context.Context, profile types.CandidateProfile, cfg *Config) ([]types.MatchResult, error) {
	cfg = cfg.withDefaults()

	roles := m.catalog.Roles()
	candidates := &Candidates{Items: make([]Candidate, 0, len(roles))}
	for _, role := range roles {
		candidates.Items = append(candidates.Items, m.Evaluate(profile, role))
	}
	candidates.Sort()

	steps := DefaultSteps(cfg)
	m.logger.Debug("recommendation steps", zap.Any("steps", Describe(steps)))

	filtered, err := Run(ctx, cfg, Deps{Logger: m.logger}, steps, candidates)
	if err != nil {
		return nil, err
	}

	return filtered.Results(), nil
}

// Sort orders candidates by match percentage, then confidence rank, both descending.
func (c *Candidates) Sort() {
	sort.SliceStable(c.Items, func(i, j int) bool {
		a, b := c.Items[i].Result, c.Items[j].Result
		if a.MatchPercentage != b.MatchPercentage {
			return a.MatchPercentage > b.MatchPercentage
		}
		return a.Confidence.Rank() > b.Confidence.Rank()
	})
}

func (m *Matcher) technical(candidate map[string]bool, role types.JobRole) float64 {
	required := uniqueSkills(role.RequiredSkills)
	preferred := uniqueSkills(role.PreferredSkills)

	weighted := 0.0
	if len(required) > 0 {
		sum := 0.0
		for _, skill := range required {
			if candidate[normalize(skill)] {
				sum += m.catalog.Weight(skill)
			}
		}
		// Divided by the number of required skills, not by the weight total.
		weighted = sum / float64(len(required))
	}

	preferredRatio := 0.0
	if len(preferred) > 0 {
		matched := 0
		for _, skill := range preferred {
			if candidate[normalize(skill)] {
				matched++
			}
		}
		preferredRatio = float64(matched) / float64(len(preferred))
	}

	return clamp(weighted*requiredShare + preferredRatio*preferredShare)
}

func (m *Matcher) softSkills(candidate map[string]bool) float64 {
	important := m.catalog.ImportantSoftSkills()
	if len(important) == 0 {
		return 0
	}

	matched := 0
	for _, skill := range important {
		if candidate[skill] {
			matched++
		}
	}
	return clamp(float64(matched) / float64(len(important)))
}

func experienceFactor(years float64, band types.ExperienceBand) float64 {
	r, ok := bandRanges[band]
	if !ok {
		r = bandRanges[types.BandMid]
	}
	if math.IsNaN(years) || years < 0 {
		years = 0
	}

	switch {
	case years >= r.low && years <= r.high:
		return 1
	case years < r.low:
		// r.low > 0 here since years >= 0.
		return clamp(math.Max(belowRangeFloor, years/r.low))
	default:
		return clamp(math.Max(aboveRangeFloor, r.high/years))
	}
}

func educationFactor(level types.EducationLevel) float64 {
	if score, ok := educationScores[level]; ok {
		return score
	}
	return educationDefault
}

func portfolioFactor(projects int) float64 {
	if projects <= 0 {
		return portfolioDefault
	}
	return math.Min(1, float64(projects)/portfolioTarget)
}

// percent converts a [0,1] score to a whole percentage, truncating. The
// epsilon absorbs float error such as 0.29*100 = 28.999999999999996.
func percent(v float64) int {
	return int(math.Floor(clamp(v)*100 + 1e-9))
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1)
}

func skillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		if n := normalize(s); n != "" {
			set[n] = true
		}
	}
	return set
}

// uniqueSkills drops case-insensitive duplicates, keeping catalog order.
func uniqueSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		n := normalize(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, s)
	}
	return out
}

func head(values []string, n int) []string {
	if len(values) > n {
		values = values[:n]
	}
	return append([]string{}, values...)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
