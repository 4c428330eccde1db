package matching

import (
	"context"
	"sort"

	"github.com/spigell/resume-scanner/internal/types"
)

const (
	gapTargetRoles    = 3
	maxPrioritySkills = 8
)

// AnalyzeSkillGaps lists the skills the candidate lacks for the target roles.
// Without explicit targets the top recommended roles are used.
func (m *Matcher) AnalyzeSkillGaps(ctx context.Context, profile types.CandidateProfile, targets []string) (types.SkillGapReport, error) {
	roles, err := m.gapTargets(ctx, profile, targets)
	if err != nil {
		return types.SkillGapReport{}, err
	}

	have := skillSet(profile.TechnicalSkills)
	report := types.SkillGapReport{
		TargetRoles:            make([]string, 0, len(roles)),
		MissingRequiredSkills:  []string{},
		MissingPreferredSkills: []string{},
		PrioritySkills:         []string{},
	}

	type gap struct {
		skill    string
		priority float64
	}
	var order []*gap
	byName := map[string]*gap{}
	add := func(skill string, priority float64) {
		key := normalize(skill)
		g, ok := byName[key]
		if !ok {
			g = &gap{skill: skill}
			byName[key] = g
			order = append(order, g)
		}
		g.priority += priority
	}

	seenRequired := map[string]bool{}
	seenPreferred := map[string]bool{}
	for _, role := range roles {
		report.TargetRoles = append(report.TargetRoles, role.Title)
		for _, skill := range role.RequiredSkills {
			key := normalize(skill)
			if have[key] || seenRequired[key] {
				continue
			}
			seenRequired[key] = true
			report.MissingRequiredSkills = append(report.MissingRequiredSkills, skill)
			add(skill, 2*m.catalog.Weight(skill))
		}
	}
	for _, role := range roles {
		for _, skill := range role.PreferredSkills {
			key := normalize(skill)
			if have[key] || seenPreferred[key] {
				continue
			}
			seenPreferred[key] = true
			report.MissingPreferredSkills = append(report.MissingPreferredSkills, skill)
			add(skill, m.catalog.Weight(skill))
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].priority > order[j].priority
	})
	for i, g := range order {
		if i == maxPrioritySkills {
			break
		}
		report.PrioritySkills = append(report.PrioritySkills, g.skill)
	}

	return report, nil
}

func (m *Matcher) gapTargets(ctx context.Context, profile types.CandidateProfile, targets []string) ([]types.JobRole, error) {
	if len(targets) > 0 {
		return m.catalog.Resolve(targets)
	}

	recommended, err := m.Recommend(ctx, profile, gapTargetRoles, DefaultMinThreshold)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(recommended))
	for _, r := range recommended {
		titles = append(titles, r.JobTitle)
	}
	return m.catalog.Resolve(titles)
}
