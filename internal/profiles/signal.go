package profiles

import (
	"math"

	"github.com/spigell/resume-scanner/internal/types"
)

// Repository breakdown keys.
const (
	FactorRepos         = "repos"
	FactorStars         = "stars"
	FactorLanguages     = "languages"
	FactorContributions = "contributions"
)

// Network breakdown keys.
const (
	FactorNetworkSize         = "network_size"
	FactorEndorsements        = "endorsements"
	FactorRecommendations     = "recommendations"
	FactorProfileCompleteness = "profile_completeness"
)

const (
	MaxSubScore = 100.0

	FallbackRepositoryScore = 30.0
	FallbackNetworkScore    = 40.0
)

// ScoreRepository turns raw repository-host counts into a signal. Each factor
// is capped so no single one can carry the score alone.
func ScoreRepository(raw types.RepositoryData) types.ProfileSignal {
	breakdown := map[string]float64{
		FactorRepos:         capped(2*float64(raw.PublicRepos), 30),
		FactorStars:         capped(2*float64(raw.TotalStars), 25),
		FactorLanguages:     capped(4*float64(len(raw.Languages)), 20),
		FactorContributions: capped(float64(raw.Contributions), 25),
	}

	return newSignal(types.SourceRepository, breakdown)
}

// ScoreNetwork turns raw professional-network counts into a signal.
func ScoreNetwork(raw types.NetworkData) types.ProfileSignal {
	endorsements := 0
	for _, n := range raw.Endorsements {
		endorsements += n
	}

	breakdown := map[string]float64{
		FactorNetworkSize:         capped(0.1*float64(raw.Connections), 25),
		FactorEndorsements:        capped(float64(endorsements), 25),
		FactorRecommendations:     capped(10*float64(raw.Recommendations), 25),
		FactorProfileCompleteness: capped(5*float64(len(raw.Skills)), 25),
	}

	return newSignal(types.SourceNetwork, breakdown)
}

// StrengthFor maps a sub-score onto its strength label.
func StrengthFor(score float64) types.Strength {
	switch {
	case score >= 80:
		return types.StrengthExcellent
	case score >= 60:
		return types.StrengthGood
	case score >= 40:
		return types.StrengthAverage
	default:
		return types.StrengthNeedsImprovement
	}
}

// FallbackRepository is the signal used when the repository host could not be reached.
func FallbackRepository() types.ProfileSignal {
	return fallback(types.SourceRepository, FallbackRepositoryScore)
}

// FallbackNetwork is the signal used when the network profile could not be read.
func FallbackNetwork() types.ProfileSignal {
	return fallback(types.SourceNetwork, FallbackNetworkScore)
}

func fallback(source string, score float64) types.ProfileSignal {
	return types.ProfileSignal{
		Source:    source,
		SubScore:  score,
		Strength:  StrengthFor(score),
		Breakdown: map[string]float64{},
		Fallback:  true,
	}
}

func newSignal(source string, breakdown map[string]float64) types.ProfileSignal {
	total := 0.0
	for k, v := range breakdown {
		breakdown[k] = round2(v)
		total += breakdown[k]
	}
	total = capped(round2(total), MaxSubScore)

	return types.ProfileSignal{
		Source:    source,
		SubScore:  total,
		Strength:  StrengthFor(total),
		Breakdown: breakdown,
	}
}

func capped(v, limit float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, limit)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
