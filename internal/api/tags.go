package api

import (
	"context"
	"net/url"
)

// hostTagsBody is the envelope for host tag mutations.
type hostTagsBody struct {
	Tags []string `json:"tags"`
}

type hostTagsResponse struct {
	Host string   `json:"host,omitempty"`
	Tags []string `json:"tags"`
}

type allTagsResponse struct {
	Tags map[string][]string `json:"tags"`
}

// ListTags returns all tags in the org, keyed by tag, each mapping to
// the hosts carrying it.
func (c *Client) ListTags(ctx context.Context, source string) (map[string][]string, error) {
	q := url.Values{}
	if source != "" {
		q.Set("source", source)
	}
	var resp allTagsResponse
	if err := c.get(ctx, "/api/v1/tags/hosts", q, &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

// GetHostTags returns the tags attached to one host.
func (c *Client) GetHostTags(ctx context.Context, hostname, source string) ([]string, error) {
	q := url.Values{}
	if source != "" {
		q.Set("source", source)
	}
	var resp hostTagsResponse
	if err := c.get(ctx, "/api/v1/tags/hosts/"+url.PathEscape(hostname), q, &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

// AddHostTags adds tags to a host, keeping existing ones.
func (c *Client) AddHostTags(ctx context.Context, hostname string, tags []string, source string) ([]string, error) {
	path := "/api/v1/tags/hosts/" + url.PathEscape(hostname)
	if source != "" {
		path += "?" + url.Values{"source": {source}}.Encode()
	}
	var resp hostTagsResponse
	if err := c.post(ctx, path, hostTagsBody{Tags: tags}, &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

// ReplaceHostTags replaces all of a host's tags for the source.
func (c *Client) ReplaceHostTags(ctx context.Context, hostname string, tags []string, source string) ([]string, error) {
	path := "/api/v1/tags/hosts/" + url.PathEscape(hostname)
	if source != "" {
		path += "?" + url.Values{"source": {source}}.Encode()
	}
	var resp hostTagsResponse
	if err := c.put(ctx, path, hostTagsBody{Tags: tags}, &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

// DeleteHostTags detaches all tags from a host for the source.
func (c *Client) DeleteHostTags(ctx context.Context, hostname, source string) error {
	path := "/api/v1/tags/hosts/" + url.PathEscape(hostname)
	if source != "" {
		path += "?" + url.Values{"source": {source}}.Encode()
	}
	return c.delete(ctx, path, nil)
}
