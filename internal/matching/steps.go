package matching

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"go.uber.org/zap"

	"github.com/spigell/resume-scanner/internal/types"
)

// Candidate is a scored role before filtering.
type Candidate struct {
	Result  types.MatchResult
	Score   float64
	Factors types.MatchFactors
}

type Candidates struct {
	Items []Candidate
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

// Exclude removes candidates for which drop returns true and returns their titles.
func (c *Candidates) Exclude(drop func(Candidate) bool) []string {
	var excluded []string
	kept := c.Items[:0]
	for _, item := range c.Items {
		if drop(item) {
			excluded = append(excluded, item.Result.JobTitle)
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
	return excluded
}

// Results returns the match results in current order.
func (c *Candidates) Results() []types.MatchResult {
	return slice.Map(c.Items, func(_ int, src Candidate) types.MatchResult {
		return src.Result
	})
}

// Config drives the recommendation filter steps.
type Config struct {
	MaxResults    int      `mapstructure:"max-results"`
	MinThreshold  float64  `mapstructure:"min-threshold"`
	Categories    []string `mapstructure:"categories"`
	ExcludeTitles []string `mapstructure:"exclude-titles"`
}

func (c *Config) withDefaults() *Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.MaxResults <= 0 {
		out.MaxResults = DefaultMaxResults
	}
	if out.MinThreshold < 0 || math.IsNaN(out.MinThreshold) {
		out.MinThreshold = 0
	}
	return &out
}

// Filter is a single recommendation filtering step.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, c *Candidates) (*Candidates, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type statusProvider interface {
	Status() Status
}

// DefaultSteps returns the standard pipeline: threshold, categories, titles, limit.
func DefaultSteps(cfg *Config) []Filter {
	steps := []Filter{
		NewThreshold(cfg.MinThreshold),
		NewCategories(cfg.Categories),
		NewExcludedTitles(cfg.ExcludeTitles),
		NewLimit(cfg.MaxResults),
	}
	if len(cfg.Categories) == 0 {
		DisableByName(steps, categoriesName, "no categories configured")
	}
	if len(cfg.ExcludeTitles) == 0 {
		DisableByName(steps, excludedTitlesName, "no titles excluded")
	}
	return steps
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, c *Candidates) (*Candidates, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Debug("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Debug("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		c = next
	}

	return c, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

const (
	thresholdName      = "threshold"
	categoriesName     = "categories"
	excludedTitlesName = "excluded_titles"
	limitName          = "limit"
)

type thresholdFilter struct {
	toggle
	minScore float64
}

// NewThreshold drops roles scoring below minScore. A role also goes when its
// truncated percentage falls under minScore×100.
func NewThreshold(minScore float64) Filter {
	return &thresholdFilter{minScore: minScore}
}

func (f *thresholdFilter) Name() string { return thresholdName }

func (f *thresholdFilter) Validate(*Config) error {
	if f.minScore < 0 || f.minScore > 1 || math.IsNaN(f.minScore) {
		return fmt.Errorf("minimum threshold %v is outside [0, 1]", f.minScore)
	}
	return nil
}

func (f *thresholdFilter) Apply(_ context.Context, _ Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	floor := f.minScore * 100
	excluded := c.Exclude(func(item Candidate) bool {
		return item.Score < f.minScore || float64(item.Result.MatchPercentage) < floor-1e-9
	})
	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *thresholdFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min": strconv.FormatFloat(f.minScore, 'f', -1, 64)},
	}
}

type categoriesFilter struct {
	toggle
	allowed []string
}

// NewCategories keeps only roles whose category is in allowed (case-insensitive).
func NewCategories(allowed []string) Filter {
	return &categoriesFilter{allowed: slice.Map(allowed, func(_ int, src string) string { return normalize(src) })}
}

func (f *categoriesFilter) Name() string { return categoriesName }

func (f *categoriesFilter) Validate(*Config) error {
	if len(f.allowed) == 0 {
		return fmt.Errorf("at least one category is required when the categories filter is enabled")
	}
	return nil
}

func (f *categoriesFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	excluded := c.Exclude(func(item Candidate) bool {
		return !slice.Contains(f.allowed, normalize(item.Result.Category))
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Debug("excluding roles outside allowed categories",
			zap.Strings("excluded_roles", excluded),
			zap.Strings("categories", f.allowed),
		)
	}
	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *categoriesFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"categories": strings.Join(f.allowed, ",")},
	}
}

type excludedTitlesFilter struct {
	toggle
	titles []string
}

// NewExcludedTitles removes roles by title (case-insensitive).
func NewExcludedTitles(titles []string) Filter {
	return &excludedTitlesFilter{titles: slice.Map(titles, func(_ int, src string) string { return normalize(src) })}
}

func (f *excludedTitlesFilter) Name() string { return excludedTitlesName }

func (f *excludedTitlesFilter) Validate(*Config) error { return nil }

func (f *excludedTitlesFilter) Apply(_ context.Context, _ Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	excluded := c.Exclude(func(item Candidate) bool {
		return slice.Contains(f.titles, normalize(item.Result.JobTitle))
	})
	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

type limitFilter struct {
	toggle
	limit int
}

// NewLimit keeps the first limit candidates.
func NewLimit(limit int) Filter {
	return &limitFilter{limit: limit}
}

func (f *limitFilter) Name() string { return limitName }

func (f *limitFilter) Validate(*Config) error {
	if f.limit <= 0 {
		return fmt.Errorf("max results must be positive, got %d", f.limit)
	}
	return nil
}

func (f *limitFilter) Apply(_ context.Context, _ Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if initial > f.limit {
		c.Items = c.Items[:f.limit]
	}
	return c, Step{Initial: initial, Dropped: initial - c.Len(), Left: c.Len()}, nil
}
