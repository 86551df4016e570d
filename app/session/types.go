package session

import "errors"

// User is the authenticated identity mirrored from the identity provider.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	ProviderID  string `json:"providerId"`
}

// State describes the manager's view of the session lifecycle. The manager
// starts Initializing and leaves that state exactly once, on the first
// auth-state notification; afterwards it toggles freely between
// Authenticated and Unauthenticated as users sign in and out.
type State int

const (
	StateInitializing State = iota
	StateUnauthenticated
	StateAuthenticated
)

// OutcomeType classifies the result of the interactive sign-in step, which
// runs on the device and is reported back to the service.
type OutcomeType string

const (
	OutcomeSuccess OutcomeType = "success"
	OutcomeCancel  OutcomeType = "cancel"
	OutcomeError   OutcomeType = "error"
)

// Outcome is the provider result the client submits to complete sign-in.
type Outcome struct {
	Type        OutcomeType `json:"type"`
	IDToken     string      `json:"idToken"`
	AccessToken string      `json:"accessToken"`
}

var (
	// ErrConfigurationMissing is returned when sign-in is attempted without
	// provider client configuration. Surfaced to the user, never a crash.
	ErrConfigurationMissing = errors.New("configuração do Google não encontrada")

	// ErrAuthenticationFailed is returned for any non-cancel sign-in outcome
	// that does not produce a valid credential.
	ErrAuthenticationFailed = errors.New("não foi possível completar o login com Google")

	// ErrSessionNotFound is returned when an operation references a session
	// token the manager does not know.
	ErrSessionNotFound = errors.New("sessão não encontrada")
)
