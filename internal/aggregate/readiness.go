package aggregate

import (
	"math"
	"strings"

	"github.com/spigell/resume-scanner/internal/types"
)

const (
	// Used when the matching account data was not fetched.
	defaultPortfolio = 30
	defaultNetwork   = 40
)

// readinessParts fixes the summation and advice order.
var readinessParts = []string{
	types.ReadinessTechnical,
	types.ReadinessEducation,
	types.ReadinessPortfolio,
	types.ReadinessNetwork,
	types.ReadinessExperience,
}

type advice struct {
	part  string
	below float64
	text  string
}

var readinessAdvice = []advice{
	{types.ReadinessTechnical, 70, "Focus on learning more in-demand technical skills"},
	{types.ReadinessPortfolio, 60, "Build more projects and contribute to open source"},
	{types.ReadinessNetwork, 50, "Expand your professional network"},
	{types.ReadinessExperience, 40, "Gain practical experience through internships or projects"},
}

type levelBand struct {
	min   int
	level types.ReadinessLevel
}

var levelBands = []levelBand{
	{85, types.ReadinessExcellent},
	{70, types.ReadinessGood},
	{55, types.ReadinessAverage},
	{40, types.ReadinessDeveloping},
}

// Readiness scores five areas on 0-100 and averages them. The overall value
// is truncated toward zero.
func Readiness(profile types.CandidateProfile, report types.ProfileReport) types.CareerReadiness {
	breakdown := map[string]float64{
		types.ReadinessTechnical:  math.Min(100, float64(distinct(profile.TechnicalSkills)*10)),
		types.ReadinessEducation:  educationReadiness(profile.SelfReportedMetric),
		types.ReadinessPortfolio:  portfolioReadiness(report.Repository),
		types.ReadinessNetwork:    networkReadiness(report.Network),
		types.ReadinessExperience: clamp(profile.ExperienceYears * 25),
	}

	total := 0.0
	for _, part := range readinessParts {
		total += breakdown[part]
	}
	overall := int(total / float64(len(readinessParts)))

	recommendations := make([]string, 0, len(readinessAdvice))
	for _, a := range readinessAdvice {
		if breakdown[a.part] < a.below {
			recommendations = append(recommendations, a.text)
		}
	}

	return types.CareerReadiness{
		Overall:         overall,
		Breakdown:       breakdown,
		Level:           LevelFor(overall),
		Recommendations: recommendations,
	}
}

// LevelFor maps an overall readiness score to its level.
func LevelFor(score int) types.ReadinessLevel {
	for _, b := range levelBands {
		if score >= b.min {
			return b.level
		}
	}
	return types.ReadinessNeedsImprovement
}

func educationReadiness(metric *float64) float64 {
	if metric == nil || math.IsNaN(*metric) {
		return 0
	}
	return clamp(math.Trunc(*metric * 10))
}

func portfolioReadiness(repo *types.RepositoryData) float64 {
	if repo == nil {
		return defaultPortfolio
	}
	repos := math.Min(50, float64(repo.PublicRepos*5))
	projects := math.Min(30, float64(len(repo.TopProjects)*10))
	languages := math.Min(20, float64(len(repo.Languages)*5))
	return math.Max(0, repos) + projects + languages
}

func networkReadiness(network *types.NetworkData) float64 {
	if network == nil {
		return defaultNetwork
	}
	endorsements := 0
	for _, n := range network.Endorsements {
		endorsements += n
	}
	connections := math.Min(40, float64(network.Connections)/5)
	endorsed := math.Min(30, float64(endorsements*2))
	recommended := math.Min(30, float64(network.Recommendations*15))
	return round2(math.Max(0, connections) + math.Max(0, endorsed) + math.Max(0, recommended))
}

func distinct(skills []string) int {
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		seen[strings.ToLower(s)] = true
	}
	return len(seen)
}
