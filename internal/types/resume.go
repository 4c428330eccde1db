package types

type EducationMention struct {
	Degree  string `json:"degree"`
	Context string `json:"context"`
}

type ExperienceMention struct {
	Description string `json:"description"`
	Timeframe   string `json:"timeframe"`
}

// ResumeEntities is the output of lexical extraction over cleaned resume text.
// List fields keep first-occurrence order.
type ResumeEntities struct {
	TechnicalSkills []string            `json:"technical_skills"`
	SoftSkills      []string            `json:"soft_skills"`
	Education       []EducationMention  `json:"education"`
	Experience      []ExperienceMention `json:"experience"`
	Projects        []string            `json:"projects"`
	Achievements    []string            `json:"achievements"`
}

type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

type TextMetrics struct {
	TotalWords          int     `json:"total_words"`
	TotalSentences      int     `json:"total_sentences"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
	AvgWordLength       float64 `json:"avg_word_length"`
	VocabularyDiversity float64 `json:"vocabulary_diversity"`
}

// ResumeScore holds the six capped category sub-scores and their sum.
type ResumeScore struct {
	TechnicalSkills int `json:"technical_skills_score" mapstructure:"technical_skills_score"`
	SoftSkills      int `json:"soft_skills_score" mapstructure:"soft_skills_score"`
	Experience      int `json:"experience_score" mapstructure:"experience_score"`
	Projects        int `json:"projects_score" mapstructure:"projects_score"`
	Achievements    int `json:"achievements_score" mapstructure:"achievements_score"`
	Education       int `json:"education_score" mapstructure:"education_score"`
	Overall         int `json:"overall_resume_score" mapstructure:"overall_resume_score"`
}

// Sum returns the total of the six category sub-scores.
func (s ResumeScore) Sum() int {
	return s.TechnicalSkills + s.SoftSkills + s.Experience + s.Projects + s.Achievements + s.Education
}

type ResumeAnalysis struct {
	Entities      ResumeEntities   `json:"entities"`
	Profile       CandidateProfile `json:"profile"`
	Contact       ContactInfo      `json:"contact"`
	Metrics       TextMetrics      `json:"metrics"`
	KeyPhrases    []string         `json:"key_phrases"`
	TextAvailable bool             `json:"text_available"`
}

// Analysis is the result of analyzing one candidate.
type Analysis struct {
	RequestID   string           `json:"request_id"`
	Candidate   CandidateSummary `json:"candidate"`
	Resume      ResumeAnalysis   `json:"resume_analysis"`
	Profiles    ProfileReport    `json:"profile_signals"`
	Score       ResumeScore      `json:"score_breakdown"`
	ScoreSource string           `json:"score_source"`
	Insights    *Insights        `json:"insights,omitempty"`
}

// Insights is free-text commentary produced by a generative analysis source.
type Insights struct {
	Summary             string   `json:"summary,omitempty"`
	Strengths           []string `json:"strengths,omitempty"`
	AreasForImprovement []string `json:"areas_for_improvement,omitempty"`
}
