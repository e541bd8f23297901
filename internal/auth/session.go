// Package auth holds the per-process authentication session. The remote
// service owns credentials and cookies; this package only resolves "who am I"
// once per session and redirects to the hosted login page when that fails
// with a 401.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sweatlog/internal/api"
)

// State is the session lifecycle state.
type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// IdentityClient is the slice of the API client the session needs.
type IdentityClient interface {
	CurrentUser(ctx context.Context) (*api.User, error)
}

// Redirector sends the user to the hosted login page. Fire-and-forget: the
// navigation is not cancellable and its outcome is not observed.
type Redirector interface {
	RedirectToLogin()
}

// RedirectorFunc adapts a func to the Redirector interface.
type RedirectorFunc func()

func (f RedirectorFunc) RedirectToLogin() { f() }

// Session resolves and holds the authenticated identity for the lifetime of
// the process. Resolution runs exactly once; there is no transition back to
// the loading state. A new session only begins with a new process.
type Session struct {
	id       string
	client   IdentityClient
	redirect Redirector
	log      *zap.Logger

	state    State
	user     *api.User
	errMsg   string
	resolved bool
}

// NewSession creates a session in the loading state. The redirector may be
// nil, in which case redirects are dropped.
func NewSession(client IdentityClient, redirect Redirector, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		id:       id,
		client:   client,
		redirect: redirect,
		log:      logger.With(zap.String("session", id)),
		state:    StateLoading,
	}
}

// Resolve queries the identity endpoint and settles the session state.
// Subsequent calls are no-ops returning the settled outcome. On a 401 the
// login redirect fires exactly once.
func (s *Session) Resolve(ctx context.Context) error {
	if s.resolved {
		if s.state == StateAuthenticated {
			return nil
		}
		return errors.New(s.errMsg)
	}
	s.resolved = true

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.state = StateUnauthenticated
		s.errMsg = err.Error()
		s.log.Debug("identity check failed", zap.Error(err))
		if errors.Is(err, api.ErrUnauthorized) {
			s.fireRedirect()
		}
		return err
	}

	s.state = StateAuthenticated
	s.user = user
	s.log.Debug("identity resolved", zap.String("user", user.ID))
	return nil
}

// Logout resets the session to unauthenticated with no error and triggers
// the login redirect, regardless of the current state. Terminal: the session
// cannot be re-resolved afterwards.
func (s *Session) Logout() {
	s.resolved = true
	s.state = StateUnauthenticated
	s.user = nil
	s.errMsg = ""
	s.log.Debug("logout")
	s.fireRedirect()
}

func (s *Session) fireRedirect() {
	if s.redirect != nil {
		s.redirect.RedirectToLogin()
	}
}

// ID is an opaque per-process identifier used for log correlation.
func (s *Session) ID() string { return s.id }

// State reports the current lifecycle state.
func (s *Session) State() State { return s.state }

// IsAuthenticated reports whether identity resolution succeeded.
func (s *Session) IsAuthenticated() bool { return s.state == StateAuthenticated }

// User returns the resolved identity, or nil before resolution or after a
// failure or logout.
func (s *Session) User() *api.User { return s.user }

// Err returns the failure message recorded at resolution time, if any.
func (s *Session) Err() string { return s.errMsg }
