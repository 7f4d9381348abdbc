package api

import (
	"context"
	"net/url"
	"strconv"
)

// Downtime is a scheduled monitor downtime (v1 API shape).
type Downtime struct {
	ID        int64    `json:"id,omitempty"`
	Scope     []string `json:"scope,omitempty"`
	Start     int64    `json:"start,omitempty"`
	End       int64    `json:"end,omitempty"`
	Message   string   `json:"message,omitempty"`
	MonitorID *int64   `json:"monitor_id,omitempty"`
	Active    bool     `json:"active,omitempty"`
	Disabled  bool     `json:"disabled,omitempty"`
	Creator   int64    `json:"creator_id,omitempty"`
}

// ListDowntimes returns all downtimes; when currentOnly is true, only
// those active right now.
func (c *Client) ListDowntimes(ctx context.Context, currentOnly bool) ([]Downtime, error) {
	q := url.Values{}
	if currentOnly {
		q.Set("current_only", "true")
	}
	var downtimes []Downtime
	if err := c.get(ctx, "/api/v1/downtime", q, &downtimes); err != nil {
		return nil, err
	}
	return downtimes, nil
}

// GetDowntime returns one downtime by ID.
func (c *Client) GetDowntime(ctx context.Context, id int64) (*Downtime, error) {
	var d Downtime
	if err := c.get(ctx, "/api/v1/downtime/"+strconv.FormatInt(id, 10), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDowntime schedules a downtime and returns the server's copy.
func (c *Client) CreateDowntime(ctx context.Context, d Downtime) (*Downtime, error) {
	var created Downtime
	if err := c.post(ctx, "/api/v1/downtime", d, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDowntime applies a partial update to a downtime.
func (c *Client) UpdateDowntime(ctx context.Context, id int64, d Downtime) (*Downtime, error) {
	var updated Downtime
	if err := c.put(ctx, "/api/v1/downtime/"+strconv.FormatInt(id, 10), d, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CancelDowntime cancels a downtime by ID.
func (c *Client) CancelDowntime(ctx context.Context, id int64) error {
	return c.delete(ctx, "/api/v1/downtime/"+strconv.FormatInt(id, 10), nil)
}

// CancelDowntimesByScope cancels every active downtime matching the
// scope and returns the IDs that were cancelled.
func (c *Client) CancelDowntimesByScope(ctx context.Context, scope string) ([]int64, error) {
	body := map[string]string{"scope": scope}
	var resp struct {
		CancelledIDs []int64 `json:"cancelled_ids"`
	}
	if err := c.post(ctx, "/api/v1/downtime/cancel/by_scope", body, &resp); err != nil {
		return nil, err
	}
	return resp.CancelledIDs, nil
}
