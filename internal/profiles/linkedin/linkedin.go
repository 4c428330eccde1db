// Package linkedin provides the professional-network source. The network
// offers no public profile API, so the client returns a fixed sample profile
// for any well-formed profile URL.
package linkedin

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-scanner/internal/profiles"
	"github.com/spigell/resume-scanner/internal/types"
)

const host = "linkedin.com"

type Client struct {
	logger *zap.Logger
}

var _ profiles.NetworkFetcher = (*Client)(nil)

func New(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{logger: logger}
}

func (c *Client) FetchNetwork(ctx context.Context, identifier string) (*types.NetworkData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profileURL, err := ProfileURL(identifier)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("using sample network profile", zap.String("profile_url", profileURL))

	return &types.NetworkData{
		ProfileURL:  profileURL,
		Connections: 150,
		Endorsements: map[string]int{
			"Python":             8,
			"JavaScript":         6,
			"Project Management": 4,
			"Team Leadership":    3,
		},
		Skills:          []string{"Software Development", "Project Management", "Data Analysis"},
		Recommendations: 2,
	}, nil
}

// ProfileURL normalizes a profile link into an absolute https URL.
func ProfileURL(identifier string) (string, error) {
	raw := strings.TrimSpace(identifier)
	if raw == "" {
		return "", fmt.Errorf("%w: empty profile url", profiles.ErrInvalidIdentifier)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", profiles.ErrInvalidIdentifier, identifier)
	}

	hostname := strings.ToLower(u.Hostname())
	if hostname != host && !strings.HasSuffix(hostname, "."+host) {
		return "", fmt.Errorf("%w: %q is not a %s profile", profiles.ErrInvalidIdentifier, identifier, host)
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "", fmt.Errorf("%w: %q has no profile path", profiles.ErrInvalidIdentifier, identifier)
	}

	return "https://" + hostname + "/" + path, nil
}
