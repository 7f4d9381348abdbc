package api

import (
	"context"
	"net/url"
)

// User is an org member (v2 API shape, flattened from JSON:API).
type User struct {
	ID         string         `json:"id"`
	Attributes UserAttributes `json:"attributes"`
}

// UserAttributes carries the user fields the CLI renders.
type UserAttributes struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Handle   string `json:"handle,omitempty"`
	Status   string `json:"status,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
	Verified bool   `json:"verified,omitempty"`
}

type userListResponse struct {
	Data []User `json:"data"`
}

type userResponse struct {
	Data User `json:"data"`
}

// ListUsers returns all org users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var resp userListResponse
	if err := c.get(ctx, "/api/v2/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetUser returns one user by UUID.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var resp userResponse
	if err := c.get(ctx, "/api/v2/users/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

type userInviteRequest struct {
	Data []userInviteData `json:"data"`
}

type userInviteData struct {
	Type          string              `json:"type"`
	Relationships userInviteRelation  `json:"relationships"`
}

type userInviteRelation struct {
	User userInviteUserRef `json:"user"`
}

type userInviteUserRef struct {
	Data userRef `json:"data"`
}

type userRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type userCreateRequest struct {
	Data userCreateData `json:"data"`
}

type userCreateData struct {
	Type       string         `json:"type"`
	Attributes UserAttributes `json:"attributes"`
}

// CreateUser creates a user record for the given email. The invitation
// email is sent separately via InviteUser.
func (c *Client) CreateUser(ctx context.Context, email, name string) (*User, error) {
	req := userCreateRequest{
		Data: userCreateData{
			Type:       "users",
			Attributes: UserAttributes{Email: email, Name: name},
		},
	}
	var resp userResponse
	if err := c.post(ctx, "/api/v2/users", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// InviteUser sends an invitation email to an existing user record.
func (c *Client) InviteUser(ctx context.Context, userID string) error {
	req := userInviteRequest{
		Data: []userInviteData{{
			Type: "user_invitations",
			Relationships: userInviteRelation{
				User: userInviteUserRef{Data: userRef{Type: "users", ID: userID}},
			},
		}},
	}
	return c.post(ctx, "/api/v2/user_invitations", req, nil)
}

// DisableUser disables (soft-deletes) a user.
func (c *Client) DisableUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/v2/users/"+url.PathEscape(id), nil)
}
