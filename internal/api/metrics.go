package api

import (
	"context"
	"net/url"
	"strconv"
)

// MetricSeries is one timeseries in a query response.
type MetricSeries struct {
	Metric      string       `json:"metric"`
	DisplayName string       `json:"display_name,omitempty"`
	Scope       string       `json:"scope,omitempty"`
	Unit        []MetricUnit `json:"unit,omitempty"`
	Pointlist   [][2]float64 `json:"pointlist"`
}

// MetricUnit describes a series unit.
type MetricUnit struct {
	Family string `json:"family,omitempty"`
	Name   string `json:"name,omitempty"`
}

// MetricQueryResponse is the result of a timeseries query.
type MetricQueryResponse struct {
	Status   string         `json:"status,omitempty"`
	Query    string         `json:"query,omitempty"`
	FromDate int64          `json:"from_date,omitempty"`
	ToDate   int64          `json:"to_date,omitempty"`
	Series   []MetricSeries `json:"series"`
}

// QueryMetrics runs a timeseries query over [from, to] epoch seconds.
func (c *Client) QueryMetrics(ctx context.Context, from, to int64, query string) (*MetricQueryResponse, error) {
	q := url.Values{}
	q.Set("from", strconv.FormatInt(from, 10))
	q.Set("to", strconv.FormatInt(to, 10))
	q.Set("query", query)

	var resp MetricQueryResponse
	if err := c.get(ctx, "/api/v1/query", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type metricSearchResponse struct {
	Results struct {
		Metrics []string `json:"metrics"`
	} `json:"results"`
}

// SearchMetrics returns metric names matching the query string.
func (c *Client) SearchMetrics(ctx context.Context, query string) ([]string, error) {
	q := url.Values{}
	q.Set("q", query)

	var resp metricSearchResponse
	if err := c.get(ctx, "/api/v1/search", q, &resp); err != nil {
		return nil, err
	}
	return resp.Results.Metrics, nil
}

// MetricMetadata describes a metric's type and units.
type MetricMetadata struct {
	Type           string `json:"type,omitempty"`
	Description    string `json:"description,omitempty"`
	ShortName      string `json:"short_name,omitempty"`
	Unit           string `json:"unit,omitempty"`
	PerUnit        string `json:"per_unit,omitempty"`
	StatsdInterval int    `json:"statsd_interval,omitempty"`
}

// GetMetricMetadata returns metadata for one metric name.
func (c *Client) GetMetricMetadata(ctx context.Context, name string) (*MetricMetadata, error) {
	var md MetricMetadata
	if err := c.get(ctx, "/api/v1/metrics/"+url.PathEscape(name), nil, &md); err != nil {
		return nil, err
	}
	return &md, nil
}
