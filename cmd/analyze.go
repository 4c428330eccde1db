package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spigell/resume-scanner/internal/aggregate"
	"github.com/spigell/resume-scanner/internal/engine"
	"github.com/spigell/resume-scanner/internal/types"
)

// analyzeReport is printed on stdout by the analyze command.
type analyzeReport struct {
	Analysis        *types.Analysis         `json:"analysis"`
	Readiness       types.CareerReadiness   `json:"career_readiness"`
	Recommendations *engine.Recommendations `json:"recommendations,omitempty"`
	CareerScore     *types.AggregateScore   `json:"career_score,omitempty"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume and print the scored report as JSON",
	Example: `  resume-scanner analyze --resume cv.pdf --name "Jane Doe" --email jane@example.com --college "State University"
  resume-scanner analyze --candidate candidate.yaml --resume cv.docx --github octocat --evaluation hr.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeFlags(analyzeCmd.Flags())
}

func analyzeFlags(f *pflag.FlagSet) {
	f.StringP("resume", "r", "", "resume file (pdf, docx or txt)")
	f.StringP("candidate", "c", "", "YAML or JSON file with candidate fields")
	f.StringP("evaluation", "e", "", "YAML or JSON file with human evaluation scores; adds the career score")
	f.String("name", "", "candidate full name")
	f.String("email", "", "candidate email")
	f.String("college", "", "candidate college")
	f.String("phone", "", "candidate phone")
	f.String("dob", "", "candidate date of birth")
	f.String("cgpa", "", "self-reported grade average on a 10 point scale")
	f.Float64("experience-years", 0, "self-reported years of experience")
	f.String("education-level", "", "self-reported education level (high school, associate, bachelor, master, phd)")
	f.String("github", "", "repository host username or profile URL")
	f.String("linkedin", "", "professional network profile URL")
	f.Bool("no-recommendations", false, "skip job recommendations")
	f.Bool("skill-gaps", false, "add a skill gap report for the top recommendations")
}

func analyze(cmd *cobra.Command) error {
	ctx := context.Background()

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	req, err := analyzeRequest(cmd)
	if err != nil {
		return err
	}

	eval, err := evaluationFromFlag(cmd)
	if err != nil {
		return err
	}

	eng, err := s.engine(ctx)
	if err != nil {
		return fmt.Errorf("building the engine: %w", err)
	}

	analysis, err := eng.AnalyzeCandidate(ctx, req)
	if err != nil {
		return err
	}

	report := analyzeReport{
		Analysis:  analysis,
		Readiness: aggregate.Readiness(analysis.Resume.Profile, analysis.Profiles),
	}

	if skip, _ := cmd.Flags().GetBool("no-recommendations"); !skip {
		gaps, _ := cmd.Flags().GetBool("skill-gaps")
		recs, err := eng.RecommendJobs(ctx, analysis.Resume.Profile, engine.RecommendOptions{SkillGaps: gaps})
		if err != nil {
			return fmt.Errorf("recommending jobs: %w", err)
		}
		report.Recommendations = recs
	}

	if eval != nil {
		score, err := eng.ComputeAggregateScore(float64(analysis.Score.Overall), analysis.Profiles.Signals, eval)
		if err != nil {
			return err
		}
		report.CareerScore = &score
	}

	s.logger.Info("candidate analyzed",
		zap.String("request_id", analysis.RequestID),
		zap.Int("overall_resume_score", analysis.Score.Overall),
		zap.Int("career_readiness", report.Readiness.Overall),
	)

	return writeJSON(cmd.OutOrStdout(), report)
}

// candidateFile is the layout of --candidate: candidate fields plus account identifiers.
type candidateFile struct {
	types.CandidateFields
	types.Accounts
}

// analyzeRequest merges the candidate file with flags. Flags win.
func analyzeRequest(cmd *cobra.Command) (engine.Request, error) {
	var req engine.Request
	f := cmd.Flags()

	if path, _ := f.GetString("candidate"); path != "" {
		var file candidateFile
		if err := decodeFile(path, &file); err != nil {
			return req, err
		}
		req.Candidate, req.Accounts = file.CandidateFields, file.Accounts
	}

	overrides := map[string]*string{
		"name":            &req.Candidate.FullName,
		"email":           &req.Candidate.Email,
		"college":         &req.Candidate.College,
		"phone":           &req.Candidate.Phone,
		"dob":             &req.Candidate.DateOfBirth,
		"cgpa":            &req.Candidate.CGPA,
		"education-level": &req.Candidate.EducationLevel,
		"github":          &req.Accounts.Repository,
		"linkedin":        &req.Accounts.Network,
	}
	for flag, target := range overrides {
		if f.Changed(flag) {
			*target, _ = f.GetString(flag)
		}
	}

	if f.Changed("experience-years") {
		years, _ := f.GetFloat64("experience-years")
		req.Candidate.ExperienceYears = &years
	}

	if path, _ := f.GetString("resume"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return req, fmt.Errorf("reading resume: %w", err)
		}
		req.Document = data
		req.DocumentName = filepath.Base(path)
	}

	return req, nil
}

func evaluationFromFlag(cmd *cobra.Command) (*types.HumanEvaluation, error) {
	path, _ := cmd.Flags().GetString("evaluation")
	if path == "" {
		return nil, nil
	}

	var eval types.HumanEvaluation
	if err := decodeFile(path, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}
