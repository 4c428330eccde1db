package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/resume-scanner/internal/types"
)

var yearsPattern = regexp.MustCompile(`\b(\d{1,2}(?:\.\d+)?)\s+years?\b`)

var degreeLevels = map[string]types.EducationLevel{
	"diploma":       types.EducationAssociate,
	"bachelor":      types.EducationBachelor,
	"bachelors":     types.EducationBachelor,
	"btech":         types.EducationBachelor,
	"bsc":           types.EducationBachelor,
	"bcom":          types.EducationBachelor,
	"ba":            types.EducationBachelor,
	"bba":           types.EducationBachelor,
	"bca":           types.EducationBachelor,
	"undergraduate": types.EducationBachelor,
	"graduate":      types.EducationBachelor,
	"master":        types.EducationMaster,
	"masters":       types.EducationMaster,
	"mtech":         types.EducationMaster,
	"msc":           types.EducationMaster,
	"mcom":          types.EducationMaster,
	"ma":            types.EducationMaster,
	"mba":           types.EducationMaster,
	"mca":           types.EducationMaster,
	"postgraduate":  types.EducationMaster,
	"phd":           types.EducationPhD,
	"doctorate":     types.EducationPhD,
}

// ExperienceYears returns the largest explicit "N years" duration found in the
// experience mentions, or 0 when none is stated.
func ExperienceYears(mentions []types.ExperienceMention) float64 {
	years := 0.0
	for _, mention := range mentions {
		for _, m := range yearsPattern.FindAllStringSubmatch(strings.ToLower(mention.Description), -1) {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			years = max(years, v)
		}
	}
	return years
}

// EducationLevel returns the highest level implied by the degree mentions.
// Mentions that do not map to a level (certificates) are ignored.
func EducationLevel(mentions []types.EducationMention) (types.EducationLevel, bool) {
	var (
		best  types.EducationLevel
		found bool
	)
	for _, mention := range mentions {
		key := strings.ReplaceAll(strings.ToLower(mention.Degree), ".", "")
		level, ok := degreeLevels[key]
		if !ok {
			continue
		}
		if !found || level.Rank() > best.Rank() {
			best = level
			found = true
		}
	}
	return best, found
}
