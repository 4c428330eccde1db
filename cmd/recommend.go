package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spigell/resume-scanner/internal/engine"
	"github.com/spigell/resume-scanner/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend job roles for a candidate profile",
	Example: `  resume-scanner recommend --skills Python,SQL,Statistics --years 2 --education master
  resume-scanner recommend --profile profile.yaml --skill-gaps --target "Data Scientist"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return recommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendFlags(recommendCmd.Flags())
}

func recommendFlags(f *pflag.FlagSet) {
	f.StringP("profile", "p", "", "YAML or JSON file with a candidate profile")
	f.StringSlice("skills", nil, "technical skills")
	f.StringSlice("soft-skills", nil, "soft skills")
	f.Float64("years", 0, "years of experience")
	f.String("education", "", "education level (high school, associate, bachelor, master, phd)")
	f.Int("projects", 0, "number of projects")
	f.Int("max-results", 0, "maximum number of recommendations (default from config)")
	f.Float64("min-threshold", 0, "minimum match score in [0, 1] (default from config)")
	f.Bool("skill-gaps", false, "add a skill gap report")
	f.StringSlice("target", nil, "target role titles for the skill gap report (default: top recommendations)")
}

func recommend(cmd *cobra.Command) error {
	ctx := context.Background()

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	profile, err := profileFromFlags(cmd)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	opts := engine.RecommendOptions{}
	opts.MaxResults, _ = f.GetInt("max-results")
	if f.Changed("min-threshold") {
		threshold, _ := f.GetFloat64("min-threshold")
		opts.MinThreshold = &threshold
	}
	opts.TargetRoles, _ = f.GetStringSlice("target")
	opts.SkillGaps, _ = f.GetBool("skill-gaps")
	opts.SkillGaps = opts.SkillGaps || len(opts.TargetRoles) > 0

	eng := engine.New(engine.Config{Matching: *s.config.Matching}, engine.Deps{
		Metrics: s.metrics,
		Logger:  s.logger,
	})

	recs, err := eng.RecommendJobs(ctx, profile, opts)
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), recs)
}

func profileFromFlags(cmd *cobra.Command) (types.CandidateProfile, error) {
	var profile types.CandidateProfile
	f := cmd.Flags()

	if path, _ := f.GetString("profile"); path != "" {
		if err := decodeFile(path, &profile); err != nil {
			return profile, err
		}
	}

	if f.Changed("skills") {
		profile.TechnicalSkills, _ = f.GetStringSlice("skills")
	}
	if f.Changed("soft-skills") {
		profile.SoftSkills, _ = f.GetStringSlice("soft-skills")
	}
	if f.Changed("years") {
		profile.ExperienceYears, _ = f.GetFloat64("years")
	}
	if f.Changed("projects") {
		profile.ProjectCount, _ = f.GetInt("projects")
	}
	if f.Changed("education") {
		raw, _ := f.GetString("education")
		profile.EducationLevel = types.EducationLevel(raw)
	}

	if profile.EducationLevel == "" {
		profile.EducationLevel = types.EducationBachelor
	}
	level, ok := types.ParseEducationLevel(string(profile.EducationLevel))
	if !ok {
		return profile, fmt.Errorf("unknown education level %q", profile.EducationLevel)
	}
	profile.EducationLevel = level
	if profile.ExperienceYears < 0 || profile.ProjectCount < 0 {
		return profile, fmt.Errorf("experience years and project count must not be negative")
	}

	return profile, nil
}
