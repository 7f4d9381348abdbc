package api

import (
	"context"
)

// LogsQuery describes a v2 log search. From and To accept the API's
// time syntax (epoch millis or ISO-8601 strings).
type LogsQuery struct {
	Query  string
	From   string
	To     string
	Limit  int
	Cursor string
}

// LogEvent is one log entry from a search response.
type LogEvent struct {
	ID         string        `json:"id"`
	Attributes LogAttributes `json:"attributes"`
}

// LogAttributes carries the rendered fields of a log entry.
type LogAttributes struct {
	Timestamp string         `json:"timestamp,omitempty"`
	Status    string         `json:"status,omitempty"`
	Service   string         `json:"service,omitempty"`
	Host      string         `json:"host,omitempty"`
	Message   string         `json:"message,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Attrs     map[string]any `json:"attributes,omitempty"`
}

// LogsResponse is a page of search results plus the cursor for the
// next page, used by `ddog logs tail` to resume where it left off.
type LogsResponse struct {
	Events     []LogEvent
	NextCursor string
}

type logsSearchRequest struct {
	Filter logsSearchFilter `json:"filter"`
	Page   *logsSearchPage  `json:"page,omitempty"`
	Sort   string           `json:"sort,omitempty"`
}

type logsSearchFilter struct {
	Query string `json:"query,omitempty"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
}

type logsSearchPage struct {
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

type logsSearchResponse struct {
	Data []LogEvent `json:"data"`
	Meta struct {
		Page struct {
			After string `json:"after,omitempty"`
		} `json:"page"`
	} `json:"meta"`
}

// SearchLogs runs a v2 log search and returns one page of events.
func (c *Client) SearchLogs(ctx context.Context, query LogsQuery) (*LogsResponse, error) {
	req := logsSearchRequest{
		Filter: logsSearchFilter{
			Query: query.Query,
			From:  query.From,
			To:    query.To,
		},
		Sort: "timestamp",
	}
	if query.Limit > 0 || query.Cursor != "" {
		req.Page = &logsSearchPage{Limit: query.Limit, Cursor: query.Cursor}
	}

	var resp logsSearchResponse
	if err := c.post(ctx, "/api/v2/logs/events/search", req, &resp); err != nil {
		return nil, err
	}
	return &LogsResponse{
		Events:     resp.Data,
		NextCursor: resp.Meta.Page.After,
	}, nil
}
