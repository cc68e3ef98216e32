package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad/internal/api"
	"launchpad/internal/models"
	"launchpad/internal/tokenstore"
)

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

type recordingModal struct {
	closed int
}

func (m *recordingModal) Close() { m.closed++ }

type fixture struct {
	manager  *Manager
	tokens   *tokenstore.MemoryStore
	notify   *recordingNotifier
	requests *atomic.Int64
}

// newFixture wires a manager against a stub backend. The handler sees every
// request the gateway actually sends.
func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()

	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	tokens := tokenstore.NewMemoryStore()
	notify := &recordingNotifier{}
	client := api.NewClient(srv.URL+"/api", tokens, 5*time.Second)

	return &fixture{
		manager:  NewManager(client, tokens, notify),
		tokens:   tokens,
		notify:   notify,
		requests: &requests,
	}
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

func authPayload(user models.User, token string) map[string]any {
	return map[string]any{"token": token, "user": user}
}

func TestManager_ResumeWithoutToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})

	assert.True(t, f.manager.IsResuming())
	state := f.manager.Resume(context.Background())

	assert.Equal(t, StateAnonymous, state)
	assert.False(t, f.manager.IsAuthenticated())
	assert.Equal(t, int64(0), f.requests.Load(), "no stored token must mean zero network calls")
}

func TestManager_ResumeWithValidToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/me", r.URL.Path)
		require.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))
		writeData(w, models.User{ID: "u1", Username: "alice", Email: "a@example.com"})
	})
	require.NoError(t, f.tokens.Save(context.Background(), "stored-token"))

	state := f.manager.Resume(context.Background())

	assert.Equal(t, StateAuthenticated, state)
	require.NotNil(t, f.manager.CurrentUser())
	assert.Equal(t, "alice", f.manager.CurrentUser().Username)
}

func TestManager_ResumeWithRejectedTokenClearsIt(t *testing.T) {
	t.Parallel()

	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
	})
	require.NoError(t, f.tokens.Save(context.Background(), "stale-token"))

	state := f.manager.Resume(context.Background())

	assert.Equal(t, StateAnonymous, state)
	assert.False(t, f.manager.IsAuthenticated())
	_, ok, err := f.tokens.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "rejected token must be cleared")
}

func TestManager_ResumeRunsOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, models.User{ID: "u1", Username: "alice"})
	})
	require.NoError(t, f.tokens.Save(context.Background(), "stored-token"))

	f.manager.Resume(context.Background())
	f.manager.Resume(context.Background())

	assert.Equal(t, int64(1), f.requests.Load(), "resume must hit the network at most once")
}

func TestManager_LoginSuccess(t *testing.T) {
	t.Parallel()

	user := models.User{ID: "u1", Username: "alice", Email: "a@example.com", FullName: "Alice A"}
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "a@example.com", req.Email)
		writeData(w, authPayload(user, "fresh-token"))
	})
	f.manager.Resume(context.Background())

	modal := &recordingModal{}
	f.manager.SetModalCloser(modal)

	require.NoError(t, f.manager.Login(context.Background(), "a@example.com", "abc123"))

	assert.True(t, f.manager.IsAuthenticated())
	assert.Equal(t, "alice", f.manager.CurrentUser().Username)
	assert.Equal(t, 1, modal.closed, "successful login must dismiss the auth form")
	assert.Contains(t, f.notify.successes, "Welcome back!")

	token, ok, err := f.tokens.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fresh-token", token)
}

func TestManager_LoginWhileAuthenticatedIsRefused(t *testing.T) {
	t.Parallel()

	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(w, authPayload(models.User{ID: "u1", Username: "alice"}, "tok"))
	})
	f.manager.Resume(context.Background())
	require.NoError(t, f.manager.Login(context.Background(), "a@example.com", "pw"))
	sent := f.requests.Load()

	err := f.manager.Login(context.Background(), "b@example.com", "pw")
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))

	err = f.manager.Register(context.Background(), models.RegisterInput{
		Username: "bob", Email: "b@example.com", Password: "abc123", FullName: "Bob B",
	})
	require.Error(t, err)

	assert.Equal(t, sent, f.requests.Load(), "refused attempts must not reach the network")
	assert.Equal(t, "alice", f.manager.CurrentUser().Username, "the signed-in session stays intact")
}

func TestManager_LoginFailureSurfacesServerMessage(t *testing.T) {
	t.Parallel()

	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	})
	f.manager.Resume(context.Background())

	err := f.manager.Login(context.Background(), "a@example.com", "wrong")
	require.Error(t, err, "failure must re-raise so the caller can reset its pending indicator")

	assert.False(t, f.manager.IsAuthenticated())
	assert.Contains(t, f.notify.errors, "Invalid credentials")
	assert.False(t, f.manager.Busy(), "pending flag must reset after failure")
}

func TestManager_LoginFailureFallbackMessage(t *testing.T) {
	t.Parallel()

	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	f.manager.Resume(context.Background())

	err := f.manager.Login(context.Background(), "a@example.com", "pw")
	require.Error(t, err)
	assert.Contains(t, f.notify.errors, "Login failed")
}

func TestManager_RegisterSuccess(t *testing.T) {
	t.Parallel()

	user := models.User{ID: "u2", Username: "bob", Email: "b@example.com"}
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/register", r.URL.Path)
		writeData(w, authPayload(user, "new-token"))
	})
	f.manager.Resume(context.Background())

	err := f.manager.Register(context.Background(), models.RegisterInput{
		Username: "bob", Email: "b@example.com", Password: "abc123", FullName: "Bob B",
	})
	require.NoError(t, err)

	assert.True(t, f.manager.IsAuthenticated())
	assert.Contains(t, f.notify.successes, "Account created successfully!")
}

func TestManager_LoginLogoutLoginLeavesOnlyLastSession(t *testing.T) {
	t.Parallel()

	users := map[string]models.User{
		"a@example.com": {ID: "u1", Username: "alice", Bio: "first bio", Location: "Berlin"},
		"b@example.com": {ID: "u2", Username: "bob"},
	}
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		u := users[req.Email]
		writeData(w, authPayload(u, "token-"+u.ID))
	})
	f.manager.Resume(context.Background())

	require.NoError(t, f.manager.Login(context.Background(), "a@example.com", "pw"))
	f.manager.Logout(context.Background())
	require.NoError(t, f.manager.Login(context.Background(), "b@example.com", "pw"))

	user := f.manager.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "bob", user.Username)
	assert.Empty(t, user.Bio, "no stale fields may leak across sessions")
	assert.Empty(t, user.Location)

	token, ok, err := f.tokens.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "token-u2", token)
}

func TestManager_LogoutClearsEverything(t *testing.T) {
	t.Parallel()

	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, authPayload(models.User{ID: "u1", Username: "alice"}, "tok"))
	})
	f.manager.Resume(context.Background())
	require.NoError(t, f.manager.Login(context.Background(), "a@example.com", "pw"))

	f.manager.Logout(context.Background())

	assert.False(t, f.manager.IsAuthenticated())
	assert.Nil(t, f.manager.CurrentUser())
	_, ok, err := f.tokens.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, f.notify.successes, "Logged out successfully")
}

func TestManager_LogoutWhileAnonymousIsNoOp(t *testing.T) {
	t.Parallel()

	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})
	f.manager.Resume(context.Background())

	f.manager.Logout(context.Background())
	f.manager.Logout(context.Background())

	assert.False(t, f.manager.IsAuthenticated())
	assert.Empty(t, f.notify.successes, "no confirmation toast for a no-op logout")
}

func TestManager_UpdateProfileReplacesWholeUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeData(w, authPayload(models.User{
				ID: "u1", Username: "alice", Location: "Berlin", Website: "example.com",
			}, "tok"))
		case "/api/auth/profile":
			require.Equal(t, http.MethodPut, r.Method)
			var in models.ProfileUpdate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			require.NotNil(t, in.Location)
			require.Equal(t, "NYC", *in.Location)
			// Server truth alters an unrelated field too: normalized website.
			writeData(w, models.User{
				ID: "u1", Username: "alice", Location: "NYC", Website: "https://example.com",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	f.manager.Resume(context.Background())
	require.NoError(t, f.manager.Login(context.Background(), "a@example.com", "pw"))

	loc := "NYC"
	updated, err := f.manager.UpdateProfile(context.Background(), models.ProfileUpdate{Location: &loc})
	require.NoError(t, err)

	assert.Equal(t, "NYC", updated.Location)
	assert.Equal(t, "https://example.com", updated.Website, "server-computed fields must replace local state")
	assert.Equal(t, "https://example.com", f.manager.CurrentUser().Website)
	assert.Contains(t, f.notify.successes, "Profile updated successfully!")
}

func TestManager_UpdateProfileFailureLeavesUserUntouched(t *testing.T) {
	t.Parallel()

	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeData(w, authPayload(models.User{ID: "u1", Username: "alice", Location: "Berlin"}, "tok"))
		case "/api/auth/profile":
			writeMessage(w, http.StatusInternalServerError, "Profile update failed")
		}
	})
	f.manager.Resume(context.Background())
	require.NoError(t, f.manager.Login(context.Background(), "a@example.com", "pw"))

	loc := "NYC"
	_, err := f.manager.UpdateProfile(context.Background(), models.ProfileUpdate{Location: &loc})
	require.Error(t, err)

	assert.Equal(t, "Berlin", f.manager.CurrentUser().Location, "failed update must not touch prior state")
}

func TestManager_UpdateProfileRequiresAuthentication(t *testing.T) {
	t.Parallel()

	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})
	f.manager.Resume(context.Background())

	loc := "NYC"
	_, err := f.manager.UpdateProfile(context.Background(), models.ProfileUpdate{Location: &loc})
	require.Error(t, err)
	assert.True(t, models.IsUnauthorizedError(err))
	assert.Equal(t, int64(0), f.requests.Load())
}
