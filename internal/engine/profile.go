package engine

import (
	"maps"
	"slices"
	"strings"

	"github.com/spigell/resume-scanner/internal/extract"
	"github.com/spigell/resume-scanner/internal/types"
)

// BuildProfile assembles the normalized candidate profile. Self-reported
// values win over values inferred from the resume text.
func BuildProfile(fields types.CandidateFields, entities types.ResumeEntities, metric *float64, report types.ProfileReport) types.CandidateProfile {
	years := extract.ExperienceYears(entities.Experience)
	if fields.ExperienceYears != nil {
		years = *fields.ExperienceYears
	}

	level, ok := types.ParseEducationLevel(fields.EducationLevel)
	if !ok {
		level, ok = extract.EducationLevel(entities.Education)
	}
	if !ok {
		level = types.EducationBachelor
	}

	skills := slices.Clone(entities.TechnicalSkills)
	projects := len(entities.Projects)
	if report.Repository != nil {
		projects = max(projects, report.Repository.PublicRepos)
		skills = mergeSkills(skills, slices.Sorted(maps.Keys(report.Repository.Languages)))
	}

	return types.CandidateProfile{
		TechnicalSkills:    skills,
		SoftSkills:         slices.Clone(entities.SoftSkills),
		ExperienceYears:    years,
		EducationLevel:     level,
		ProjectCount:       projects,
		Achievements:       slices.Clone(entities.Achievements),
		SelfReportedMetric: metric,
	}
}

// mergeSkills appends extra names not already present, ignoring case.
func mergeSkills(skills, extra []string) []string {
	seen := make(map[string]bool, len(skills)+len(extra))
	for _, s := range skills {
		seen[strings.ToLower(s)] = true
	}
	for _, s := range extra {
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, s)
	}
	return skills
}
