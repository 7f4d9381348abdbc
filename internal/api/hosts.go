package api

import (
	"context"
	"net/url"
	"strconv"
)

// Host is a reporting host (v1 API shape, trimmed to the fields the
// CLI renders).
type Host struct {
	Name        string              `json:"name"`
	HostName    string              `json:"host_name,omitempty"`
	ID          int64               `json:"id,omitempty"`
	Up          bool                `json:"up"`
	IsMuted     bool                `json:"is_muted"`
	LastReported float64            `json:"last_reported_time,omitempty"`
	Apps        []string            `json:"apps,omitempty"`
	Sources     []string            `json:"sources,omitempty"`
	TagsBySource map[string][]string `json:"tags_by_source,omitempty"`
}

type hostListResponse struct {
	Hosts         []Host `json:"host_list"`
	TotalMatching int64  `json:"total_matching"`
	TotalReturned int64  `json:"total_returned"`
}

// ListHosts returns hosts matching the filter query, up to count.
func (c *Client) ListHosts(ctx context.Context, filter string, count int) ([]Host, error) {
	q := url.Values{}
	if filter != "" {
		q.Set("filter", filter)
	}
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}

	var resp hostListResponse
	if err := c.get(ctx, "/api/v1/hosts", q, &resp); err != nil {
		return nil, err
	}
	return resp.Hosts, nil
}

// GetHost returns the single host whose name matches exactly, or nil
// when the API reports no such host.
func (c *Client) GetHost(ctx context.Context, hostname string) (*Host, error) {
	hosts, err := c.ListHosts(ctx, "host:"+hostname, 1)
	if err != nil {
		return nil, err
	}
	if len(hosts) == 0 {
		return nil, nil
	}
	return &hosts[0], nil
}

// HostTotals is the org-wide host count summary.
type HostTotals struct {
	TotalUp     int64 `json:"total_up"`
	TotalActive int64 `json:"total_active"`
}

// GetHostTotals returns up/active host counts.
func (c *Client) GetHostTotals(ctx context.Context) (*HostTotals, error) {
	var totals HostTotals
	if err := c.get(ctx, "/api/v1/hosts/totals", nil, &totals); err != nil {
		return nil, err
	}
	return &totals, nil
}

// hostMuteBody is the request body for host mute.
type hostMuteBody struct {
	Message string `json:"message,omitempty"`
	End     int64  `json:"end,omitempty"`
}

// HostMuteResponse reports the resulting mute state.
type HostMuteResponse struct {
	Hostname string `json:"hostname"`
	Action   string `json:"action"`
	Message  string `json:"message,omitempty"`
	End      int64  `json:"end,omitempty"`
}

// MuteHost mutes a host, optionally until end (epoch seconds).
func (c *Client) MuteHost(ctx context.Context, hostname, message string, end int64) (*HostMuteResponse, error) {
	var resp HostMuteResponse
	path := "/api/v1/host/" + url.PathEscape(hostname) + "/mute"
	if err := c.post(ctx, path, hostMuteBody{Message: message, End: end}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UnmuteHost unmutes a host.
func (c *Client) UnmuteHost(ctx context.Context, hostname string) (*HostMuteResponse, error) {
	var resp HostMuteResponse
	path := "/api/v1/host/" + url.PathEscape(hostname) + "/unmute"
	if err := c.post(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
