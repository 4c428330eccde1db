package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-scanner/internal/types"
)

//go:embed roles.yaml
var builtin []byte

// DefaultWeight is used for skills without a market weight when the catalog does not set one.
const DefaultWeight = 0.6

type document struct {
	DefaultWeight       float64            `yaml:"default_weight" validate:"gte=0,lte=1"`
	ImportantSoftSkills []string           `yaml:"important_soft_skills" validate:"required,min=1,dive,required"`
	SkillWeights        map[string]float64 `yaml:"skill_weights" validate:"dive,keys,required,endkeys,gte=0,lte=1"`
	Roles               []types.JobRole    `yaml:"roles" validate:"required,min=1,dive"`
}

// Catalog is an immutable registry of job roles and skill market weights.
// It is safe for concurrent use.
type Catalog struct {
	roles         []types.JobRole
	weights       map[string]float64
	defaultWeight float64
	softSkills    []string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It is parsed once per process.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(builtin)
		if err != nil {
			panic(fmt.Sprintf("built-in job catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses a YAML catalog document.
func Load(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Roles))
	for _, role := range doc.Roles {
		key := normalize(role.Title)
		if seen[key] {
			return nil, fmt.Errorf("duplicate role %q", role.Title)
		}
		seen[key] = true
	}

	c := &Catalog{
		roles:         doc.Roles,
		weights:       make(map[string]float64, len(doc.SkillWeights)),
		defaultWeight: doc.DefaultWeight,
		softSkills:    make([]string, 0, len(doc.ImportantSoftSkills)),
	}
	if c.defaultWeight == 0 {
		c.defaultWeight = DefaultWeight
	}
	for skill, weight := range doc.SkillWeights {
		c.weights[normalize(skill)] = weight
	}
	for _, skill := range doc.ImportantSoftSkills {
		c.softSkills = append(c.softSkills, normalize(skill))
	}

	return c, nil
}

// Roles returns the roles in catalog order. Callers must not modify the skill slices.
func (c *Catalog) Roles() []types.JobRole {
	return slices.Clone(c.roles)
}

// Role looks a role up by title, ignoring case.
func (c *Catalog) Role(title string) (types.JobRole, bool) {
	key := normalize(title)
	for _, role := range c.roles {
		if normalize(role.Title) == key {
			return role, true
		}
	}
	return types.JobRole{}, false
}

// Categories returns distinct role categories in catalog order.
func (c *Catalog) Categories() []string {
	categories := make([]string, 0)
	for _, role := range c.roles {
		if !slices.Contains(categories, role.Category) {
			categories = append(categories, role.Category)
		}
	}
	return categories
}

// Weight returns the market weight of a skill, ignoring case.
func (c *Catalog) Weight(skill string) float64 {
	if w, ok := c.weights[normalize(skill)]; ok {
		return w
	}
	return c.defaultWeight
}

// ImportantSoftSkills returns the lowercase soft skills counted by the matcher.
func (c *Catalog) ImportantSoftSkills() []string {
	return slices.Clone(c.softSkills)
}

var ErrUnknownRole = errors.New("unknown job role")

// Resolve maps titles to catalog roles, failing on the first unknown title.
func (c *Catalog) Resolve(titles []string) ([]types.JobRole, error) {
	roles := make([]types.JobRole, 0, len(titles))
	for _, title := range titles {
		role, ok := c.Role(title)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, title)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
