package types

import "strings"

type EducationLevel string

const (
	EducationHighSchool EducationLevel = "high_school"
	EducationAssociate  EducationLevel = "associate"
	EducationBachelor   EducationLevel = "bachelor"
	EducationMaster     EducationLevel = "master"
	EducationPhD        EducationLevel = "phd"
)

// Rank orders levels from high school (0) to PhD (4). Unknown levels rank -1.
func (l EducationLevel) Rank() int {
	switch l {
	case EducationHighSchool:
		return 0
	case EducationAssociate:
		return 1
	case EducationBachelor:
		return 2
	case EducationMaster:
		return 3
	case EducationPhD:
		return 4
	default:
		return -1
	}
}

// ParseEducationLevel normalizes free-form level names ("High School", "PhD", "doctorate").
// The second return value is false when the input does not name a known level.
func ParseEducationLevel(s string) (EducationLevel, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", " ", "_", " ", ".", "").Replace(normalized)

	switch normalized {
	case "high school", "highschool", "secondary":
		return EducationHighSchool, true
	case "associate", "associates", "diploma":
		return EducationAssociate, true
	case "bachelor", "bachelors", "undergraduate":
		return EducationBachelor, true
	case "master", "masters", "postgraduate", "graduate":
		return EducationMaster, true
	case "phd", "doctorate", "doctoral":
		return EducationPhD, true
	default:
		return "", false
	}
}

// CandidateProfile is the normalized record consumed by the scorer and the matcher.
// It is built once per request and must not be mutated afterwards.
type CandidateProfile struct {
	TechnicalSkills    []string       `json:"technical_skills"`
	SoftSkills         []string       `json:"soft_skills"`
	ExperienceYears    float64        `json:"experience_years"`
	EducationLevel     EducationLevel `json:"education_level"`
	ProjectCount       int            `json:"project_count"`
	Achievements       []string       `json:"achievements"`
	SelfReportedMetric *float64       `json:"self_reported_metric,omitempty"`
}

// CandidateFields are the self-reported fields submitted alongside a resume.
type CandidateFields struct {
	FullName        string   `json:"full_name" mapstructure:"full_name" validate:"required"`
	Email           string   `json:"email" mapstructure:"email" validate:"required,email"`
	College         string   `json:"college" mapstructure:"college" validate:"required"`
	Phone           string   `json:"phone,omitempty" mapstructure:"phone"`
	DateOfBirth     string   `json:"dob,omitempty" mapstructure:"dob"`
	CGPA            string   `json:"cgpa,omitempty" mapstructure:"cgpa"`
	ExperienceYears *float64 `json:"experience_years,omitempty" mapstructure:"experience_years" validate:"omitempty,gte=0,lte=60"`
	EducationLevel  string   `json:"education_level,omitempty" mapstructure:"education_level"`
}

// Accounts holds the optional external profile identifiers. Empty means not provided.
type Accounts struct {
	Repository string `json:"repository,omitempty" mapstructure:"repository"`
	Network    string `json:"network,omitempty" mapstructure:"network"`
}

type CandidateSummary struct {
	Name    string `json:"name"`
	College string `json:"college"`
	CGPA    string `json:"cgpa,omitempty"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
}
