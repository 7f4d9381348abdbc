package api

import (
	"context"
	"net/url"
	"strconv"
)

// Event is a Datadog event (v1 API shape).
type Event struct {
	ID           int64    `json:"id,omitempty"`
	Title        string   `json:"title,omitempty"`
	Text         string   `json:"text,omitempty"`
	DateHappened int64    `json:"date_happened,omitempty"`
	Priority     string   `json:"priority,omitempty"`
	Source       string   `json:"source_type_name,omitempty"`
	AlertType    string   `json:"alert_type,omitempty"`
	Host         string   `json:"host,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	URL          string   `json:"url,omitempty"`
}

type eventListResponse struct {
	Events []Event `json:"events"`
}

type eventResponse struct {
	Event Event `json:"event"`
}

// EventFilter narrows a ListEvents call. Start and End are epoch
// seconds and required by the API.
type EventFilter struct {
	Start    int64
	End      int64
	Priority string
	Sources  string
	Tags     string
}

// ListEvents returns the event stream for the filter window.
func (c *Client) ListEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	q := url.Values{}
	q.Set("start", strconv.FormatInt(filter.Start, 10))
	q.Set("end", strconv.FormatInt(filter.End, 10))
	if filter.Priority != "" {
		q.Set("priority", filter.Priority)
	}
	if filter.Sources != "" {
		q.Set("sources", filter.Sources)
	}
	if filter.Tags != "" {
		q.Set("tags", filter.Tags)
	}

	var resp eventListResponse
	if err := c.get(ctx, "/api/v1/events", q, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// GetEvent returns one event by ID.
func (c *Client) GetEvent(ctx context.Context, id int64) (*Event, error) {
	var resp eventResponse
	if err := c.get(ctx, "/api/v1/events/"+strconv.FormatInt(id, 10), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

// PostEvent posts a new event to the stream.
func (c *Client) PostEvent(ctx context.Context, e Event) (*Event, error) {
	var resp eventResponse
	if err := c.post(ctx, "/api/v1/events", e, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}
