package backend

import (
	"context"
	"io"
	"net/http"
)

// CheckHealth reports whether the backend answers /health with a 2xx within
// the health timeout. It never returns an error.
func (c *Client) CheckHealth(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+EndpointHealth, http.NoBody)
	if err != nil {
		c.log.Warn("backend not available", "err", err)
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend not available", "err", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("backend not available", "status", resp.StatusCode)
		return false
	}
	return true
}
