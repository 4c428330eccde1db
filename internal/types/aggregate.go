package types

type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
)

const (
	ComponentResume          = "resume"
	ComponentRepository      = "repository_signal"
	ComponentNetwork         = "network_signal"
	ComponentGroupDiscussion = "group_discussion"
	ComponentAptitude        = "aptitude"
	ComponentTechnical       = "technical"
	ComponentAcademic        = "academic"
)

// HumanEvaluation holds externally supplied evaluation sub-scores, each 0-100.
type HumanEvaluation struct {
	GroupDiscussion float64 `json:"group_discussion" mapstructure:"group_discussion" validate:"gte=0,lte=100"`
	Aptitude        float64 `json:"aptitude" mapstructure:"aptitude" validate:"gte=0,lte=100"`
	Technical       float64 `json:"technical" mapstructure:"technical" validate:"gte=0,lte=100"`
	Academic        float64 `json:"academic" mapstructure:"academic" validate:"gte=0,lte=100"`
}

type AggregateScore struct {
	Overall        float64            `json:"overall"`
	Breakdown      map[string]float64 `json:"breakdown"`
	Weights        map[string]float64 `json:"weights"`
	Grade          Grade              `json:"grade"`
	Recommendation string             `json:"recommendation"`
}

type ReadinessLevel string

const (
	ReadinessExcellent        ReadinessLevel = "Excellent"
	ReadinessGood             ReadinessLevel = "Good"
	ReadinessAverage          ReadinessLevel = "Average"
	ReadinessDeveloping       ReadinessLevel = "Developing"
	ReadinessNeedsImprovement ReadinessLevel = "Needs Improvement"
)

const (
	ReadinessTechnical  = "Technical Skills"
	ReadinessEducation  = "Education"
	ReadinessPortfolio  = "Portfolio"
	ReadinessNetwork    = "Professional Network"
	ReadinessExperience = "Experience"
)

// CareerReadiness is the unweighted readiness summary derived from the
// candidate profile and fetched account data. It needs no human evaluation.
type CareerReadiness struct {
	Overall         int                `json:"overall_score"`
	Breakdown       map[string]float64 `json:"breakdown"`
	Level           ReadinessLevel     `json:"level"`
	Recommendations []string           `json:"recommendations"`
}
