package types

type ExperienceBand string

const (
	BandEntry  ExperienceBand = "entry"
	BandMid    ExperienceBand = "mid"
	BandSenior ExperienceBand = "senior"
)

// JobRole is a catalog entry. Roles are shared read-only between requests.
type JobRole struct {
	Title            string         `json:"title" yaml:"title" validate:"required"`
	Category         string         `json:"category" yaml:"category" validate:"required"`
	RequiredSkills   []string       `json:"required_skills" yaml:"required_skills" validate:"required,min=1,dive,required"`
	PreferredSkills  []string       `json:"preferred_skills" yaml:"preferred_skills" validate:"dive,required"`
	Description      string         `json:"description" yaml:"description"`
	CompensationBand string         `json:"compensation_band" yaml:"compensation_band"`
	ExperienceBand   ExperienceBand `json:"experience_band" yaml:"experience_band" validate:"required,oneof=entry mid senior"`
	ExperienceLevel  string         `json:"experience_level" yaml:"experience_level"`
	GrowthPotential  string         `json:"growth_potential" yaml:"growth_potential"`
}

type Confidence string

const (
	ConfidenceLow      Confidence = "Low"
	ConfidenceMedium   Confidence = "Medium"
	ConfidenceHigh     Confidence = "High"
	ConfidenceVeryHigh Confidence = "Very High"
)

// Rank orders confidence labels from Low (0) to Very High (3).
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceVeryHigh:
		return 3
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

const (
	FactorTechnicalSkills = "technical_skills"
	FactorExperience      = "experience"
	FactorEducation       = "education"
	FactorPortfolio       = "portfolio"
	FactorSoftSkills      = "soft_skills"
)

// MatchFactors is the per-role factor vector. Every factor lies in [0, 1].
type MatchFactors struct {
	TechnicalSkills float64 `json:"technical_skills"`
	Experience      float64 `json:"experience"`
	Education       float64 `json:"education"`
	Portfolio       float64 `json:"portfolio"`
	SoftSkills      float64 `json:"soft_skills"`
}

// Map returns the factors keyed by factor name.
func (f MatchFactors) Map() map[string]float64 {
	return map[string]float64{
		FactorTechnicalSkills: f.TechnicalSkills,
		FactorExperience:      f.Experience,
		FactorEducation:       f.Education,
		FactorPortfolio:       f.Portfolio,
		FactorSoftSkills:      f.SoftSkills,
	}
}

type Feedback struct {
	Strengths       []string `json:"strengths"`
	AreasToImprove  []string `json:"areas_to_improve"`
	Recommendations []string `json:"recommendations"`
}

type MatchResult struct {
	JobTitle         string         `json:"job_title"`
	Category         string         `json:"category"`
	MatchPercentage  int            `json:"match_percentage"`
	Confidence       Confidence     `json:"confidence"`
	MatchBreakdown   map[string]int `json:"match_breakdown"`
	Feedback         Feedback       `json:"feedback"`
	NextSteps        []string       `json:"next_steps"`
	Description      string         `json:"description"`
	CompensationBand string         `json:"compensation_band"`
	ExperienceLevel  string         `json:"experience_level"`
	GrowthPotential  string         `json:"growth_potential"`
	RequiredSkills   []string       `json:"required_skills"`
	PreferredSkills  []string       `json:"preferred_skills"`
	MatchedSkills    []string       `json:"matched_skills"`
}

// SkillGapReport lists the skills missing for a set of target roles.
type SkillGapReport struct {
	TargetRoles            []string `json:"target_roles"`
	MissingRequiredSkills  []string `json:"missing_required_skills"`
	MissingPreferredSkills []string `json:"missing_preferred_skills"`
	PrioritySkills         []string `json:"priority_skills"`
}
