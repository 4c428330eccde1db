package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ecodeclub/ekit/net/httpx"
	"go.uber.org/zap"

	"github.com/spigell/resume-scanner/internal/profiles"
)

const (
	acceptHeader = "application/vnd.github+json"
	apiVersion   = "2022-11-28"
)

// StatusError is returned for any non-200 API response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status: %s", e.Status)
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, target any) error {
	endpoint := c.APIURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	c.logger.Debug("make request", zap.String("url", endpoint))

	req := httpx.NewRequest(ctx, http.MethodGet, endpoint).
		Client(c.HTTPClient).
		AddHeader("Accept", acceptHeader).
		AddHeader("X-GitHub-Api-Version", apiVersion).
		AddHeader("User-Agent", c.UserAgent)
	if c.token != "" {
		req = req.AddHeader("Authorization", "Bearer "+c.token)
	}

	resp := req.Do()
	if resp.Response == nil {
		// Transport failure; JSONScan reports it.
		return resp.JSONScan(target)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", profiles.ErrProfileNotFound, path)
	default:
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if err := resp.JSONScan(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}
