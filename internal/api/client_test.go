package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad/internal/tokenstore"
)

func newTestClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := tokenstore.NewMemoryStore()
	if token != "" {
		require.NoError(t, tokens.Save(context.Background(), token))
	}
	return NewClient(srv.URL+"/api", tokens, 5*time.Second)
}

func TestAttachBearer(t *testing.T) {
	t.Parallel()

	t.Run("attaches header without mutating original", func(t *testing.T) {
		t.Parallel()
		req, err := http.NewRequest(http.MethodGet, "http://example.com/auth/me", nil)
		require.NoError(t, err)

		out := AttachBearer(req, "tok123")
		assert.Equal(t, "Bearer tok123", out.Header.Get("Authorization"))
		assert.Empty(t, req.Header.Get("Authorization"), "input request must stay untouched")
	})

	t.Run("empty token leaves request unauthenticated", func(t *testing.T) {
		t.Parallel()
		req, err := http.NewRequest(http.MethodGet, "http://example.com/auth/me", nil)
		require.NoError(t, err)

		out := AttachBearer(req, "")
		assert.Empty(t, out.Header.Get("Authorization"))
	})
}

func TestClient_AttachesStoredToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
	})
	client := newTestClient(t, handler, "secret-token")

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, client.Get(context.Background(), "/auth/me", &out))
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.True(t, out.OK)
}

func TestClient_NoTokenSendsUnauthenticated(t *testing.T) {
	t.Parallel()

	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":{}}`))
	})
	client := newTestClient(t, handler, "")

	require.NoError(t, client.Get(context.Background(), "/auth/me", nil))
	assert.Empty(t, gotAuth, "no stored token means no authorization header")
}

func TestClient_FetchRawNeverSendsCredential(t *testing.T) {
	t.Parallel()

	// A host outside the API base, like a third-party thumbnail CDN.
	var gotAuth string
	thirdParty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("bytes"))
	}))
	t.Cleanup(thirdParty.Close)

	apiSrv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(apiSrv.Close)

	tokens := tokenstore.NewMemoryStore()
	require.NoError(t, tokens.Save(context.Background(), "session-token"))
	client := NewClient(apiSrv.URL+"/api", tokens, 5*time.Second)

	resp, err := client.FetchRaw(context.Background(), thirdParty.URL+"/thumb.png")
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Empty(t, gotAuth, "the bearer token belongs to the API and must not reach other hosts")
}

func TestClient_NonSuccessReturnsAPIError(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	})
	client := newTestClient(t, handler, "")

	err := client.PostJSON(context.Background(), "/auth/login", map[string]string{}, nil)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestServerMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "boom", ServerMessage(&APIError{StatusCode: 500, Message: "boom"}, "fallback"))
	assert.Equal(t, "fallback", ServerMessage(&APIError{StatusCode: 500}, "fallback"))
	assert.Equal(t, "fallback", ServerMessage(context.DeadlineExceeded, "fallback"))
}

func TestClient_MalformedEnvelope(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	client := newTestClient(t, handler, "")

	var out struct{}
	err := client.Get(context.Background(), "/auth/me", &out)
	assert.Error(t, err, "malformed payload must surface as an error")
}
