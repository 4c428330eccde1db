package matching

import (
	"fmt"
	"strings"

	"github.com/spigell/resume-scanner/internal/types"
)

const (
	maxNamedMissingSkills = 3
	maxNextSteps          = 4
)

const (
	categoryWebDevelopment    = "Web Development"
	categoryDataScience       = "Data Science"
	categoryMobileDevelopment = "Mobile Development"
)

func feedback(f types.MatchFactors, role types.JobRole, candidateSkills map[string]bool) types.Feedback {
	fb := types.Feedback{
		Strengths:       []string{},
		AreasToImprove:  []string{},
		Recommendations: []string{},
	}

	if f.TechnicalSkills >= 0.7 {
		fb.Strengths = append(fb.Strengths, "Strong technical skill match")
	}
	if f.Experience >= 0.8 {
		fb.Strengths = append(fb.Strengths, "Excellent experience level alignment")
	}
	if f.Portfolio >= 0.6 {
		fb.Strengths = append(fb.Strengths, "Good project portfolio")
	}

	if f.TechnicalSkills < 0.5 {
		var missing []string
		for _, skill := range uniqueSkills(role.RequiredSkills) {
			if !candidateSkills[normalize(skill)] {
				missing = append(missing, skill)
			}
			if len(missing) == maxNamedMissingSkills {
				break
			}
		}
		if len(missing) > 0 {
			fb.AreasToImprove = append(fb.AreasToImprove,
				fmt.Sprintf("Strengthen technical skills, particularly: %s", strings.Join(missing, ", ")))
		}
	}
	if f.Experience < 0.4 {
		fb.AreasToImprove = append(fb.AreasToImprove, "Gain more relevant work experience")
	}
	if f.Portfolio < 0.4 {
		fb.AreasToImprove = append(fb.AreasToImprove, "Build more projects to showcase skills")
	}

	if role.Category == categoryDataScience && f.TechnicalSkills < 0.6 {
		fb.Recommendations = append(fb.Recommendations, "Consider taking online courses in data science and analytics")
	}
	if f.Experience < 0.5 {
		fb.Recommendations = append(fb.Recommendations, "Look for internships or entry-level positions to gain experience")
	}

	return fb
}

func nextSteps(f types.MatchFactors, role types.JobRole) []string {
	var steps []string

	switch {
	case f.TechnicalSkills >= 0.7:
		steps = append(steps, "Start applying to positions - your technical skills are a great match!")
	case f.TechnicalSkills >= 0.4:
		steps = append(steps, "Focus on learning the specific technologies mentioned in job requirements")
	default:
		steps = append(steps, "Build foundational skills in the key technologies for this role")
	}

	if f.Portfolio < 0.6 {
		steps = append(steps, "Create 2-3 projects that demonstrate your skills in this domain")
	}
	if f.Experience < 0.4 {
		steps = append(steps, "Consider internships, freelance work, or contributing to open source projects")
	}

	switch role.Category {
	case categoryWebDevelopment:
		steps = append(steps, "Build a personal portfolio website showcasing your projects")
	case categoryDataScience:
		steps = append(steps, "Participate in Kaggle competitions to demonstrate your analytical skills")
	case categoryMobileDevelopment:
		steps = append(steps, "Publish apps to app stores to show real-world development experience")
	}

	if len(steps) > maxNextSteps {
		steps = steps[:maxNextSteps]
	}
	return steps
}
