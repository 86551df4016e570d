// Package session mirrors the externally-owned authentication state and
// keeps the user's profile document in sync with it. The manager does not
// own session lifetime: it reacts to provider outcomes and exposes the
// current state to the rest of the application.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/profetadiario/noticias/app/store"
)

// Verifier validates a provider credential token and resolves it to a
// User. It is the boundary to the identity backend.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*User, error)
}

// Manager tracks active sessions and the session-lifecycle state machine.
type Manager struct {
	client   *store.Client
	verifier Verifier // nil when provider configuration is absent

	mu          sync.Mutex
	state       State
	current     *User
	sessions    map[string]*User
	busy        bool
	lastError   string
	subscribers []func(*User)
}

// NewManager creates a session manager. verifier may be nil when the
// provider client configuration is absent; sign-in then fails with
// ErrConfigurationMissing instead of crashing at startup.
func NewManager(client *store.Client, verifier Verifier) *Manager {
	return &Manager{
		client:   client,
		verifier: verifier,
		state:    StateInitializing,
		sessions: make(map[string]*User),
	}
}

// Start delivers the initial auth-state notification. With no persisted
// sessions the first notification always carries a nil user, moving the
// manager out of Initializing for good.
func (m *Manager) Start() {
	m.setAuthState(nil)
}

// Subscribe registers a callback invoked on every auth-state change with
// the new current user (nil when signed out).
func (m *Manager) Subscribe(fn func(*User)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// SignIn completes the sign-in flow for an interactive provider outcome.
// A cancel outcome returns normally with no state change. Any other
// non-success outcome, or a success outcome missing its credential token,
// fails with ErrAuthenticationFailed. On success the credential is
// exchanged for a session token and the user's profile document is
// upserted in the background.
func (m *Manager) SignIn(ctx context.Context, outcome Outcome) (string, *User, error) {
	if m.verifier == nil {
		slog.Error("Sign-in attempted without provider configuration")
		return "", nil, ErrConfigurationMissing
	}

	m.setBusy(true)
	defer m.setBusy(false)

	if outcome.Type == OutcomeCancel {
		slog.Info("Sign-in cancelled by user")
		return "", nil, nil
	}

	if outcome.Type != OutcomeSuccess || outcome.IDToken == "" {
		m.recordError(ErrAuthenticationFailed.Error())
		slog.Error("Sign-in failed", "outcome", outcome.Type, "has_token", outcome.IDToken != "")
		return "", nil, ErrAuthenticationFailed
	}

	user, err := m.verifier.Verify(ctx, outcome.IDToken)
	if err != nil {
		m.recordError(err.Error())
		slog.Error("Credential verification failed", "error", err)
		return "", nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	token := uuid.NewString()

	m.mu.Lock()
	m.sessions[token] = user
	m.mu.Unlock()

	m.setAuthState(user)

	slog.Info("User signed in", "uid", user.UID, "provider", user.ProviderID)
	return token, user, nil
}

// SignOut ends the session for the given token. An unknown token is an
// error the caller surfaces to the user.
func (m *Manager) SignOut(ctx context.Context, token string) error {
	m.setBusy(true)
	defer m.setBusy(false)

	m.mu.Lock()
	user, ok := m.sessions[token]
	if ok {
		delete(m.sessions, token)
	}
	m.mu.Unlock()

	if !ok {
		m.recordError(ErrSessionNotFound.Error())
		return ErrSessionNotFound
	}

	m.setAuthState(nil)

	slog.Info("User signed out", "uid", user.UID)
	return nil
}

// Lookup resolves a session token to its user, or nil.
func (m *Manager) Lookup(token string) *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[token]
}

// CurrentUser returns the user from the most recent auth-state change.
func (m *Manager) CurrentUser() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Initializing reports whether the first auth-state notification has not
// yet been delivered.
func (m *Manager) Initializing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateInitializing
}

// Busy reports whether a sign-in or sign-out is in flight.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// LastError returns the message recorded by the most recent failure, or
// the empty string.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// setAuthState applies an auth-state change: updates the state machine,
// notifies subscribers, and on every transition into Authenticated kicks
// off the profile upsert.
func (m *Manager) setAuthState(user *User) {
	m.mu.Lock()
	m.current = user
	if user != nil {
		m.state = StateAuthenticated
	} else {
		m.state = StateUnauthenticated
	}
	subscribers := make([]func(*User), len(m.subscribers))
	copy(subscribers, m.subscribers)
	m.mu.Unlock()

	for _, fn := range subscribers {
		fn(user)
	}

	if user != nil {
		go m.persistProfile(user)
	}
}

// persistProfile upserts the user's profile document. Failures are logged
// and swallowed: authentication success never depends on profile
// persistence.
func (m *Manager) persistProfile(user *User) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lastLogin, err := m.client.ServerTime(ctx)
	if err != nil {
		slog.Error("Failed to persist user profile", "uid", user.UID, "error", err)
		return
	}

	providerID := user.ProviderID
	if providerID == "" {
		providerID = "unknown"
	}

	err = m.client.Redis().HSet(ctx, "users:"+user.UID, map[string]interface{}{
		"uid":         user.UID,
		"email":       user.Email,
		"displayName": user.DisplayName,
		"photoURL":    user.PhotoURL,
		"lastLoginAt": lastLogin.Format(time.RFC3339Nano),
		"providerId":  providerID,
	}).Err()
	if err != nil {
		slog.Error("Failed to persist user profile", "uid", user.UID, "error", err)
		return
	}

	slog.Debug("User profile persisted", "uid", user.UID)
}

func (m *Manager) setBusy(busy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = busy
	if busy {
		m.lastError = ""
	}
}

func (m *Manager) recordError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = msg
}
