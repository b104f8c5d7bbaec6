package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/campaign-console/internal/apiclient"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(apiclient.UserSummary{ID: "u1"})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)

	_, err := client.Me(context.Background(), "T")
	require.NoError(t, err)
	assert.Equal(t, "Bearer T", gotAuth)
}

func TestClient_PublicCallsCarryNoCredential(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"items": []apiclient.Plan{{ID: "p1", Name: "Pro"}}})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)

	plans, err := client.Plans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Pro", plans[0].Name)
	assert.Empty(t, gotAuth)
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var payload apiclient.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "a@b.com", payload.Email)
		assert.Equal(t, "x", payload.Password)

		json.NewEncoder(w).Encode(apiclient.LoginResponse{
			AccessToken: "T",
			User:        apiclient.UserSummary{ID: "1", Email: "a@b.com", Role: "ADMIN"},
		})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)

	resp, err := client.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "T", resp.AccessToken)
	assert.Equal(t, "ADMIN", resp.User.Role)
	assert.True(t, resp.User.IsAdmin())
}

func TestClient_NormalizesErrorEnvelope(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    string
	}{
		{
			name:        "message field wins",
			status:      403,
			body:        `{"error": "not_approved", "message": "Account pending approval"}`,
			wantMessage: "Account pending approval",
			wantCode:    "not_approved",
		},
		{
			name:        "error field as fallback",
			status:      400,
			body:        `{"error": "bad_request"}`,
			wantMessage: "bad_request",
			wantCode:    "bad_request",
		},
		{
			name:        "non JSON body falls back to status text",
			status:      500,
			body:        `<html>boom</html>`,
			wantMessage: "Internal Server Error",
		},
		{
			name:        "empty body falls back to status text",
			status:      404,
			body:        "",
			wantMessage: "Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := apiclient.New(srv.URL)

			_, err := client.Me(context.Background(), "T")
			require.Error(t, err)

			apiErr, ok := apiclient.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	// Point at a server that is already gone.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := apiclient.New(srv.URL)

	_, err := client.Me(context.Background(), "T")
	require.Error(t, err)

	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status)
	assert.True(t, apiclient.IsNetworkError(err))
	assert.False(t, apiclient.IsAuthError(err), "a network failure is transient, not unauthenticated")
}

func TestClient_UpdateCampaign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/campaigns/c1", r.URL.Path)

		var payload apiclient.UpdateCampaignRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Spring push", payload.Name)
		assert.Equal(t, "paused", payload.Status)

		json.NewEncoder(w).Encode(apiclient.Campaign{ID: "c1", Name: payload.Name, Status: payload.Status})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)

	campaign, err := client.UpdateCampaign(context.Background(), "T", "c1", apiclient.UpdateCampaignRequest{
		Name:   "Spring push",
		Status: "paused",
	})
	require.NoError(t, err)
	assert.Equal(t, "paused", campaign.Status)
}

func TestClient_DeleteCampaign(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)

	require.NoError(t, client.DeleteCampaign(context.Background(), "T", "c1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/campaigns/c1", gotPath)
}

func TestIsBusinessDenial(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "403 with envelope code",
			err:  &apiclient.APIError{Status: 403, Code: "not_approved", Message: "Account pending approval"},
			want: true,
		},
		{
			name: "bare 403",
			err:  &apiclient.APIError{Status: 403, Message: "Forbidden"},
			want: false,
		},
		{
			name: "401 with code",
			err:  &apiclient.APIError{Status: 401, Code: "token_expired"},
			want: false,
		},
		{
			name: "network failure",
			err:  &apiclient.APIError{Status: 0},
			want: false,
		},
		{
			name: "unrelated error",
			err:  context.Canceled,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apiclient.IsBusinessDenial(tt.err))
		})
	}
}

func TestClient_QueryPassthrough(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{"items": []apiclient.Lead{}, "total": 0})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)

	query := url.Values{"page": {"2"}, "q": {"smith"}}

	_, err := client.Leads(context.Background(), "T", query)
	require.NoError(t, err)
	assert.Equal(t, "page=2&q=smith", gotQuery)
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{status: 401, want: true},
		{status: 403, want: true},
		{status: 400, want: false},
		{status: 500, want: false},
		{status: 0, want: false},
	}

	for _, tt := range tests {
		err := &apiclient.APIError{Status: tt.status}
		assert.Equal(t, tt.want, apiclient.IsAuthError(err), "status %d", tt.status)
	}

	assert.False(t, apiclient.IsAuthError(nil))
	assert.False(t, apiclient.IsAuthError(context.Canceled))
}
