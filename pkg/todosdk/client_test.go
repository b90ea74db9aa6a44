package todosdk_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/todohub/pkg/todosdk"
)

// fakeIdP serves client-credentials tokens and counts how many were issued.
type fakeIdP struct {
	srv    *httptest.Server
	issued atomic.Int32
	token  string
}

func newFakeIdP(t *testing.T) *fakeIdP {
	t.Helper()
	idp := &fakeIdP{token: "tok-1"}
	idp.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			GrantType    string `json:"grant_type"`
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "client_credentials", req.GrantType)

		if req.ClientSecret != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		n := idp.issued.Add(1)
		idp.token = "tok-" + string(rune('0'+n))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": idp.token,
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(idp.srv.Close)
	return idp
}

func newClient(t *testing.T, api *httptest.Server, idp *fakeIdP, secret string) *todosdk.Client {
	t.Helper()
	return todosdk.NewClient(todosdk.Config{
		APIBaseURL:   api.URL,
		TokenURL:     idp.srv.URL,
		ClientID:     "worker",
		ClientSecret: secret,
		Audience:     "https://todohub.example.com/api",
	})
}

func envelopeBody(t *testing.T, data any) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"success": true,
		"message": nil,
		"code":    nil,
		"data":    data,
	})
	require.NoError(t, err)
	return b
}

func TestUpdateExpiredTodos(t *testing.T) {
	idp := newFakeIdP(t)

	due := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/v1/worker/expired", r.URL.Path)
		require.Equal(t, "Bearer "+idp.token, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(envelopeBody(t, []map[string]any{
			{
				"todo": map[string]any{"id": "t1", "title": "pay rent", "status_id": 3, "valid_until": due},
				"user": map[string]any{"id": "u1", "email": "a@example.com", "status_id": 1},
			},
		}))
	}))
	defer api.Close()

	client := newClient(t, api, idp, "s3cret")

	expired, err := client.UpdateExpiredTodos(t.Context())
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, "t1", expired[0].Todo.ID)
	require.Equal(t, "a@example.com", expired[0].User.Email)
}

func TestTokenIsCachedAcrossCalls(t *testing.T) {
	idp := newFakeIdP(t)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(envelopeBody(t, []any{}))
	}))
	defer api.Close()

	client := newClient(t, api, idp, "s3cret")

	for range 3 {
		_, err := client.UpdateExpiredTodos(t.Context())
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), idp.issued.Load(), "token must be fetched once and reused")
}

func TestReauthenticatesOnUnauthorized(t *testing.T) {
	idp := newFakeIdP(t)

	var calls atomic.Int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// Simulate a token the API no longer accepts
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid token.","code":"invalid_token","data":null}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(envelopeBody(t, []any{}))
	}))
	defer api.Close()

	client := newClient(t, api, idp, "s3cret")

	_, err := client.UpdateExpiredTodos(t.Context())
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load(), "401 must trigger exactly one retry")
	require.Equal(t, int32(2), idp.issued.Load(), "retry must carry a fresh token")
}

func TestAuthFailureSurfaces(t *testing.T) {
	idp := newFakeIdP(t)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("API must not be called when authentication fails")
	}))
	defer api.Close()

	client := newClient(t, api, idp, "wrong")

	_, err := client.UpdateExpiredTodos(t.Context())
	var authErr *todosdk.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, http.StatusUnauthorized, authErr.Status)
}

func TestAPIErrorCarriesEnvelopeFields(t *testing.T) {
	idp := newFakeIdP(t)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success":false,"message":"Permission denied.","code":"permission_denied","data":null}`))
	}))
	defer api.Close()

	client := newClient(t, api, idp, "s3cret")

	_, err := client.UpdateExpiredTodos(t.Context())
	var apiErr *todosdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.Status)
	require.Equal(t, "permission_denied", apiErr.Code)
	require.Equal(t, "Permission denied.", apiErr.Message)
}
