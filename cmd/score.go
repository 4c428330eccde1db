package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spigell/resume-scanner/internal/engine"
	"github.com/spigell/resume-scanner/internal/profiles"
	"github.com/spigell/resume-scanner/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the aggregate career score from component scores",
	Example: `  resume-scanner score --resume-score 72 --repository-score 55 --technical 80 --aptitude 70
  resume-scanner score --resume-score 72 --interactive`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return score(cmd)
	},
}

// evaluationFlags maps human evaluation flags to their prompt labels.
var evaluationFlags = []struct {
	flag  string
	label string
}{
	{"group-discussion", "Group discussion score"},
	{"aptitude", "Aptitude test score"},
	{"technical", "Technical interview score"},
	{"academic", "Academic performance score"},
}

var promptScore = func(label string) (float64, error) {
	prompt := promptui.Prompt{
		Label:    label + " (0-100)",
		Default:  "0",
		Validate: validateScore,
	}

	raw, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreFlags(scoreCmd.Flags())
}

func scoreFlags(f *pflag.FlagSet) {
	f.Float64("resume-score", 0, "overall resume score (0-100)")
	f.Float64("repository-score", 0, "repository signal sub-score (0-100); omitted means not provided")
	f.Float64("network-score", 0, "network signal sub-score (0-100); omitted means not provided")
	for _, e := range evaluationFlags {
		f.Float64(e.flag, 0, strings.ToLower(e.label)+" (0-100)")
	}
	f.BoolP("interactive", "i", false, "prompt for human evaluation scores not given as flags")
}

func score(cmd *cobra.Command) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	f := cmd.Flags()
	resumeScore, _ := f.GetFloat64("resume-score")

	var signals types.ProfileSignals
	if f.Changed("repository-score") {
		v, _ := f.GetFloat64("repository-score")
		signals.Repository = &types.ProfileSignal{Source: types.SourceRepository, SubScore: v, Strength: profiles.StrengthFor(v)}
	}
	if f.Changed("network-score") {
		v, _ := f.GetFloat64("network-score")
		signals.Network = &types.ProfileSignal{Source: types.SourceNetwork, SubScore: v, Strength: profiles.StrengthFor(v)}
	}

	interactive, _ := f.GetBool("interactive")
	eval, err := collectEvaluation(cmd, interactive)
	if err != nil {
		return err
	}

	eng := engine.New(engine.Config{}, engine.Deps{Metrics: s.metrics, Logger: s.logger})
	result, err := eng.ComputeAggregateScore(resumeScore, signals, eval)
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), result)
}

// collectEvaluation returns nil when no evaluation score was given or prompted.
func collectEvaluation(cmd *cobra.Command, interactive bool) (*types.HumanEvaluation, error) {
	values := make(map[string]float64, len(evaluationFlags))
	for _, e := range evaluationFlags {
		switch {
		case cmd.Flags().Changed(e.flag):
			values[e.flag], _ = cmd.Flags().GetFloat64(e.flag)
		case interactive:
			v, err := promptScore(e.label)
			if err != nil {
				if errors.Is(err, promptui.ErrInterrupt) {
					return nil, fmt.Errorf("evaluation prompt interrupted")
				}
				return nil, err
			}
			values[e.flag] = v
		}
	}

	if len(values) == 0 {
		return nil, nil
	}

	return &types.HumanEvaluation{
		GroupDiscussion: values["group-discussion"],
		Aptitude:        values["aptitude"],
		Technical:       values["technical"],
		Academic:        values["academic"],
	}, nil
}

func validateScore(input string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return errors.New("invalid number")
	}
	if v < 0 || v > 100 {
		return errors.New("score must be between 0 and 100")
	}
	return nil
}
