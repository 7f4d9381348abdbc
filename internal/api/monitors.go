package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Monitor is a Datadog monitor (v1 API shape).
type Monitor struct {
	ID           int64    `json:"id,omitempty"`
	Name         string   `json:"name,omitempty"`
	Type         string   `json:"type,omitempty"`
	Query        string   `json:"query,omitempty"`
	Message      string   `json:"message,omitempty"`
	OverallState string   `json:"overall_state,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Priority     *int     `json:"priority,omitempty"`
	Creator      *Creator `json:"creator,omitempty"`
	Created      string   `json:"created,omitempty"`
	Modified     string   `json:"modified,omitempty"`
}

// Creator identifies who created a resource.
type Creator struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// ListMonitors returns all monitors, optionally filtered server-side
// by a comma-separated tag list.
func (c *Client) ListMonitors(ctx context.Context, tags string) ([]Monitor, error) {
	q := url.Values{}
	if tags != "" {
		q.Set("monitor_tags", tags)
	}
	var monitors []Monitor
	if err := c.get(ctx, "/api/v1/monitor", q, &monitors); err != nil {
		return nil, err
	}
	return monitors, nil
}

// GetMonitor returns one monitor by ID.
func (c *Client) GetMonitor(ctx context.Context, id int64) (*Monitor, error) {
	var m Monitor
	if err := c.get(ctx, "/api/v1/monitor/"+strconv.FormatInt(id, 10), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMonitor creates a monitor and returns the server's copy.
func (c *Client) CreateMonitor(ctx context.Context, m Monitor) (*Monitor, error) {
	var created Monitor
	if err := c.post(ctx, "/api/v1/monitor", m, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateMonitor applies a partial update to a monitor.
func (c *Client) UpdateMonitor(ctx context.Context, id int64, m Monitor) (*Monitor, error) {
	var updated Monitor
	if err := c.put(ctx, "/api/v1/monitor/"+strconv.FormatInt(id, 10), m, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMonitor deletes a monitor by ID.
func (c *Client) DeleteMonitor(ctx context.Context, id int64) error {
	return c.delete(ctx, "/api/v1/monitor/"+strconv.FormatInt(id, 10), nil)
}

// ValidateMonitor checks a monitor definition without creating it.
func (c *Client) ValidateMonitor(ctx context.Context, m Monitor) error {
	return c.post(ctx, "/api/v1/monitor/validate", m, nil)
}

// muteBody is the request body for mute/unmute endpoints.
type muteBody struct {
	Scope string `json:"scope,omitempty"`
	End   int64  `json:"end,omitempty"`
}

// MuteMonitor mutes a monitor, optionally restricted to a scope and
// bounded by an end time (epoch seconds, 0 for indefinite).
func (c *Client) MuteMonitor(ctx context.Context, id int64, scope string, end int64) (*Monitor, error) {
	var m Monitor
	path := fmt.Sprintf("/api/v1/monitor/%d/mute", id)
	if err := c.post(ctx, path, muteBody{Scope: scope, End: end}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UnmuteMonitor unmutes a monitor, optionally for one scope only.
func (c *Client) UnmuteMonitor(ctx context.Context, id int64, scope string) (*Monitor, error) {
	var m Monitor
	path := fmt.Sprintf("/api/v1/monitor/%d/unmute", id)
	if err := c.post(ctx, path, muteBody{Scope: scope}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// muteAllResponse is the downtime created by MuteAllMonitors.
type muteAllResponse struct {
	ID int64 `json:"id"`
}

// MuteAllMonitors mutes every monitor in the org. Returns the ID of
// the downtime that implements the mute.
func (c *Client) MuteAllMonitors(ctx context.Context) (int64, error) {
	var resp muteAllResponse
	if err := c.post(ctx, "/api/v1/monitor/mute_all", nil, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// UnmuteAllMonitors cancels an org-wide mute.
func (c *Client) UnmuteAllMonitors(ctx context.Context) error {
	return c.post(ctx, "/api/v1/monitor/unmute_all", nil, nil)
}
