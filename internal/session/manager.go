// Package session owns the client's authentication lifecycle: resuming a
// persisted session at startup, explicit login/register/logout, and
// pessimistic profile updates.
package session

import (
	"context"
	"log/slog"
	"sync"

	"launchpad/internal/api"
	"launchpad/internal/models"
	"launchpad/internal/observability"
	"launchpad/internal/tokenstore"
)

// State is the session controller's lifecycle state.
type State int

const (
	// StateResuming is the initial state while the stored-token resume
	// attempt has not yet completed. Consumers must treat it as a
	// blocking gate before rendering user-specific content.
	StateResuming State = iota
	// StateAnonymous means no user is signed in.
	StateAnonymous
	// StateAuthenticated means a user is signed in.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateResuming:
		return "resuming"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Notifier surfaces user-visible outcome messages, the client-side
// equivalent of toast notifications.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// ModalCloser dismisses the auth form after a successful login or register.
// The controller holds it as a narrow hook so it stays decoupled from form
// internals.
type ModalCloser interface {
	Close()
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Manager is the process-wide session controller. Construct it once at
// startup and call Resume before rendering anything user-specific.
type Manager struct {
	api    *api.Client
	tokens tokenstore.Store
	notify Notifier
	logger *observability.Logger

	mu         sync.Mutex
	state      State
	user       *models.User
	modal      ModalCloser
	busy       bool
	resumeOnce sync.Once
}

// NewManager returns a Manager in the resuming state.
func NewManager(client *api.Client, tokens tokenstore.Store, notify Notifier) *Manager {
	return &Manager{
		api:    client,
		tokens: tokens,
		notify: notify,
		logger: observability.GlobalLogger,
		state:  StateResuming,
	}
}

// SetModalCloser registers the auth form to dismiss on successful login or
// register. Optional; a nil closer is ignored.
func (m *Manager) SetModalCloser(mc ModalCloser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modal = mc
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsResuming reports whether the initial resume attempt is still pending.
func (m *Manager) IsResuming() bool {
	return m.State() == StateResuming
}

// IsAuthenticated reports whether a user is signed in. Derived from the
// presence of the current user, never stored separately.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// CurrentUser returns a copy of the signed-in user, or nil when anonymous.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Busy reports whether a login/register/update operation is in flight.
// Callers disable their triggering control while true.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// Resume attempts to restore an authenticated session from the stored
// token. It runs at most once per process; later calls return the settled
// state immediately. With no stored token the session becomes anonymous
// without any network call. Any failure (network, 401, malformed response)
// clears the token silently and the session becomes anonymous.
func (m *Manager) Resume(ctx context.Context) State {
	m.resumeOnce.Do(func() {
		ctx = observability.WithOperation(ctx, "session.resume")

		// The gateway's transport reads the token itself; here only
		// presence matters, to honor the zero-network-calls guarantee.
		_, ok, err := m.tokens.Load(ctx)
		if err != nil {
			m.logger.WarnContext(ctx, "token load failed", slog.String("error", err.Error()))
		}
		if !ok {
			m.transition(nil)
			return
		}

		var user models.User
		if err := m.api.Get(ctx, "/auth/me", &user); err != nil {
			m.logger.WarnContext(ctx, "session resume failed", slog.String("error", err.Error()))
			if clearErr := m.tokens.Clear(ctx); clearErr != nil {
				m.logger.WarnContext(ctx, "token clear failed", slog.String("error", clearErr.Error()))
			}
			m.transition(nil)
			return
		}
		m.transition(&user)
	})
	return m.State()
}

// Login authenticates with email and password. Only meaningful while
// anonymous; a signed-in session is refused. On success the returned
// token is persisted, the user becomes current, the auth form is dismissed,
// and a success notification is emitted. On failure the server message (or
// a generic fallback) is surfaced and the error re-raised so the caller can
// reset its pending indicator; the session stays anonymous.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if m.IsAuthenticated() {
		return models.NewValidationError("Already signed in")
	}
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	ctx = observability.WithOperation(ctx, "session.login")

	var resp authResponse
	if err := m.api.PostJSON(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		m.notify.Error(api.ServerMessage(err, "Login failed"))
		return err
	}

	m.establish(ctx, resp)
	m.notify.Success("Welcome back!")
	return nil
}

// Register creates a new account. Only meaningful while anonymous, like
// Login. Confirm-password equality is the caller's responsibility (the
// register form checks it locally); the controller does not re-validate it.
func (m *Manager) Register(ctx context.Context, in models.RegisterInput) error {
	if m.IsAuthenticated() {
		return models.NewValidationError("Already signed in")
	}
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	ctx = observability.WithOperation(ctx, "session.register")

	var resp authResponse
	if err := m.api.PostJSON(ctx, "/auth/register", in, &resp); err != nil {
		m.notify.Error(api.ServerMessage(err, "Registration failed"))
		return err
	}

	m.establish(ctx, resp)
	m.notify.Success("Account created successfully!")
	return nil
}

// Logout clears the token and the current user. Calling it while already
// anonymous is a safe no-op and emits no notification.
func (m *Manager) Logout(ctx context.Context) {
	ctx = observability.WithOperation(ctx, "session.logout")

	m.mu.Lock()
	wasAuthenticated := m.user != nil
	m.user = nil
	m.state = StateAnonymous
	m.mu.Unlock()

	if err := m.tokens.Clear(ctx); err != nil {
		m.logger.WarnContext(ctx, "token clear failed", slog.String("error", err.Error()))
	}
	if wasAuthenticated {
		m.notify.Success("Logged out successfully")
	}
}

// UpdateProfile sends the partial fields and replaces the current user with
// the server's full returned representation. The update is fully
// pessimistic: no local state changes until the server confirms. Failure
// leaves the prior user untouched and re-raises.
func (m *Manager) UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error) {
	if !m.IsAuthenticated() {
		return nil, models.NewUnauthorizedError("Not signed in")
	}
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.end()

	ctx = observability.WithOperation(ctx, "session.update_profile")

	var user models.User
	if err := m.api.PutJSON(ctx, "/auth/profile", in, &user); err != nil {
		m.notify.Error(api.ServerMessage(err, "Profile update failed"))
		return nil, err
	}

	m.mu.Lock()
	// Full replacement from server truth, never a client-side merge.
	m.user = &user
	m.mu.Unlock()

	m.notify.Success("Profile updated successfully!")
	u := user
	return &u, nil
}

// establish persists the credential and installs the authenticated user.
func (m *Manager) establish(ctx context.Context, resp authResponse) {
	if err := m.tokens.Save(ctx, resp.Token); err != nil {
		// The session still works in-process; it just won't survive a restart.
		m.logger.WarnContext(ctx, "token save failed", slog.String("error", err.Error()))
	}
	m.transition(&resp.User)

	m.mu.Lock()
	modal := m.modal
	m.mu.Unlock()
	if modal != nil {
		modal.Close()
	}
}

// transition installs user (or nil) and derives the new state.
func (m *Manager) transition(user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	if user != nil {
		m.state = StateAuthenticated
	} else {
		m.state = StateAnonymous
	}
}

// begin marks an operation in flight, rejecting overlap. This is the
// mutex-by-disabled-state: a second attempt while one is pending is refused
// rather than cancelled.
func (m *Manager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return models.NewValidationError("Another request is already in progress")
	}
	m.busy = true
	return nil
}

func (m *Manager) end() {
	m.mu.Lock()
	m.busy = false
	m.mu.Unlock()
}
