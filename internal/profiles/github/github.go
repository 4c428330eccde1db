// Package github reads public account data from the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-scanner/internal/profiles"
	"github.com/spigell/resume-scanner/internal/types"
)

const (
	APIURL    = "https://api.github.com"
	userAgent = "spigell/resume-scanner"

	// Only the most recently updated repositories are inspected.
	reposPerPage  = "10"
	eventsPerPage = "100"
	topProjects   = 3

	noDescription = "No description available"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

var _ profiles.RepositoryFetcher = (*Client)(nil)

// New returns a client for the public API. The token is optional and only
// raises rate limits.
func New(logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  strings.TrimSpace(token),
		APIURL: APIURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

type user struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

type repository struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	HTMLURL     string `json:"html_url"`
	Fork        bool   `json:"fork"`
}

// FetchRepository loads the account, its recently updated repositories and
// recent public activity.
func (c *Client) FetchRepository(ctx context.Context, identifier string) (*types.RepositoryData, error) {
	username, err := Username(identifier)
	if err != nil {
		return nil, err
	}

	var u user
	if err := c.getJSON(ctx, "/users/"+username, nil, &u); err != nil {
		return nil, err
	}

	repos, err := c.repositories(ctx, username)
	if err != nil {
		return nil, err
	}

	var events []map[string]any
	q := url.Values{}
	q.Set("per_page", eventsPerPage)
	if err := c.getJSON(ctx, "/users/"+username+"/events/public", q, &events); err != nil {
		return nil, err
	}

	data := summarize(repos)
	data.Username = username
	if u.Login != "" {
		data.Username = u.Login
	}
	data.Name = u.Name
	data.Bio = u.Bio
	data.PublicRepos = u.PublicRepos
	data.Followers = u.Followers
	data.Contributions = len(events)

	c.logger.Debug("fetched repository profile",
		zap.String("username", data.Username),
		zap.Int("public_repos", data.PublicRepos),
		zap.Int("total_stars", data.TotalStars),
		zap.Int("events", data.Contributions),
	)

	return data, nil
}

func (c *Client) repositories(ctx context.Context, username string) ([]repository, error) {
	q := url.Values{}
	q.Set("sort", "updated")
	q.Set("per_page", reposPerPage)

	var items []map[string]any
	if err := c.getJSON(ctx, "/users/"+username+"/repos", q, &items); err != nil {
		return nil, err
	}

	var repos []repository
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &repos,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode repositories: %w", err)
	}

	return repos, nil
}

func summarize(repos []repository) *types.RepositoryData {
	data := &types.RepositoryData{
		Languages:   map[string]int{},
		TopProjects: []types.Project{},
	}

	var own []repository
	for _, r := range repos {
		if r.Fork {
			continue
		}
		data.TotalStars += r.Stars
		if r.Language != "" {
			data.Languages[r.Language]++
		}
		own = append(own, r)
	}

	sort.SliceStable(own, func(i, j int) bool {
		return own[i].Stars > own[j].Stars
	})

	for i, r := range own {
		if i == topProjects {
			break
		}
		description := strings.TrimSpace(r.Description)
		if description == "" {
			description = noDescription
		}
		data.TopProjects = append(data.TopProjects, types.Project{
			Name:        r.Name,
			Description: description,
			Language:    r.Language,
			Stars:       r.Stars,
			URL:         r.HTMLURL,
		})
	}

	return data
}

// Username extracts the account name from a bare name or a profile URL.
func Username(identifier string) (string, error) {
	id := strings.TrimSpace(identifier)
	id = strings.TrimPrefix(id, "@")

	if strings.Contains(id, "github.com") {
		if !strings.Contains(id, "://") {
			id = "https://" + id
		}
		u, err := url.Parse(id)
		if err != nil {
			return "", fmt.Errorf("%w: %q", profiles.ErrInvalidIdentifier, identifier)
		}
		id = strings.Trim(u.Path, "/")
		if idx := strings.Index(id, "/"); idx != -1 {
			id = id[:idx]
		}
	}

	if !usernamePattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", profiles.ErrInvalidIdentifier, identifier)
	}

	return id, nil
}
