package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/ddog/internal/api"
	"github.com/schmitthub/ddog/internal/cmdutil"
	"github.com/schmitthub/ddog/internal/iostreams/iostreamstest"
	"github.com/schmitthub/ddog/internal/retry"
)

func testFactory(t *testing.T, handler http.Handler) (*cmdutil.Factory, *iostreamstest.TestIOStreams) {
	t.Helper()

	ios := iostreamstest.New()
	f := &cmdutil.Factory{
		IOStreams:   ios.IOStreams,
		RetryPolicy: func() retry.Policy { return retry.Policy{MaxAttempts: 1, BaseDelay: time.Millisecond, Multiplier: 2} },
	}

	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		client := api.NewClient(api.Config{APIKey: "k", AppKey: "a", BaseURL: srv.URL})
		f.Client = func() (*api.Client, error) { return client, nil }
	}

	return f, ios
}

func TestListRun_HidesDisabled(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/users", r.URL.Path)
		json.NewEncoder(w).Encode(map[string][]api.User{"data": {
			{ID: "u1", Attributes: api.UserAttributes{Handle: "alex", Name: "Alex", Email: "alex@example.com", Status: "Active"}},
			{ID: "u2", Attributes: api.UserAttributes{Handle: "gone", Disabled: true}},
		}})
	})
	f, ios := testFactory(t, handler)

	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
	}

	require.NoError(t, listRun(context.Background(), opts))
	out := ios.OutBuf.String()
	assert.Contains(t, out, "alex")
	assert.NotContains(t, out, "gone")
	assert.Contains(t, ios.ErrBuf.String(), "Total users: 1")
}

func TestGetRun(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/users/u1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]api.User{"data": {
			ID: "u1", Attributes: api.UserAttributes{Handle: "alex", Name: "Alex Doe", Email: "alex@example.com", Status: "Active", Verified: true},
		}})
	})
	f, ios := testFactory(t, handler)

	opts := &GetOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
		ID:        "u1",
	}

	require.NoError(t, getRun(context.Background(), opts))
	out := ios.OutBuf.String()
	assert.Contains(t, out, "Alex Doe")
	assert.Contains(t, out, "alex@example.com")
}

func TestInviteRun_CreatesThenInvites(t *testing.T) {
	var invitedID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/users":
			assert.Equal(t, http.MethodPost, r.Method)
			json.NewEncoder(w).Encode(map[string]api.User{"data": {
				ID: "u9", Attributes: api.UserAttributes{Email: "new@example.com"},
			}})
		case "/api/v2/user_invitations":
			var req struct {
				Data []struct {
					Relationships struct {
						User struct {
							Data struct {
								ID string `json:"id"`
							} `json:"data"`
						} `json:"user"`
					} `json:"relationships"`
				} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Data, 1)
			invitedID = req.Data[0].Relationships.User.Data.ID
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	f, ios := testFactory(t, handler)

	opts := &InviteOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
		Email:     "new@example.com",
		Name:      "New Person",
	}

	require.NoError(t, inviteRun(context.Background(), opts))
	assert.Equal(t, "u9", invitedID)
	assert.Contains(t, ios.OutBuf.String(), "Invited new@example.com")
}

func TestDisableRun_Confirmed(t *testing.T) {
	disabled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v2/users/u1", r.URL.Path)
		disabled = true
		w.WriteHeader(http.StatusNoContent)
	})
	f, ios := testFactory(t, handler)

	opts := &DisableOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Policy:    f.RetryPolicy,
		Format:    &cmdutil.FormatFlags{},
		ID:        "u1",
		Confirmed: true,
	}

	require.NoError(t, disableRun(context.Background(), opts))
	assert.True(t, disabled)
	assert.Contains(t, ios.OutBuf.String(), "Disabled user u1")
}
