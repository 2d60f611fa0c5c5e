package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/ports"
)

// SessionState is the lifecycle state of the client session.
type SessionState int

const (
	// StateUnknown: before the startup replay has finished.
	StateUnknown SessionState = iota
	// StateAnonymous: no valid session.
	StateAnonymous
	// StateAuthenticated: a validated user is attached.
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// SessionService owns the authentication lifecycle: it replays a stored token
// at startup, performs login/logout, and is the single dispatch point for the
// cross-cutting "session lost" signal. It is constructed explicitly and
// injected wherever needed; there is no package-level instance.
type SessionService struct {
	api   ports.AuthAPI
	store ports.SessionStore
	log   zerolog.Logger
	now   func() time.Time

	mu      sync.Mutex
	state   SessionState
	user    *domain.User
	loading bool
	onLost  func(reason string)
}

// SessionOption customises a SessionService at construction time.
type SessionOption func(*SessionService)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionService) { s.now = now }
}

func NewSessionService(api ports.AuthAPI, store ports.SessionStore, log zerolog.Logger, opts ...SessionOption) *SessionService {
	s := &SessionService{
		api:     api,
		store:   store,
		log:     log,
		now:     time.Now,
		state:   StateUnknown,
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnSessionLost registers the single observer invoked whenever the session is
// torn down without an explicit logout: watchdog expiry, or a 401 surfaced
// mid-session by any API call. Registering replaces any previous observer.
func (s *SessionService) OnSessionLost(fn func(reason string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLost = fn
}

// Bootstrap replays a previously stored token against the backend and settles
// the state machine into Anonymous or Authenticated. It must be called once
// before any other operation.
func (s *SessionService) Bootstrap(ctx context.Context) error {
	sess, ok, err := s.store.Read()
	if err != nil {
		s.settle(StateAnonymous, nil)
		return err
	}
	if !ok {
		s.settle(StateAnonymous, nil)
		return nil
	}
	if sess.Expired(s.now()) {
		_ = s.store.Clear()
		s.settle(StateAnonymous, nil)
		return nil
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		// Any failure on replay means the stored token is dead weight.
		s.log.Debug().Err(err).Msg("session replay rejected")
		_ = s.store.Clear()
		s.settle(StateAnonymous, nil)
		return nil
	}

	s.settle(StateAuthenticated, user)
	s.log.Info().Int("user_id", user.ID).Str("role", user.RoleNom).Msg("session restored")
	return nil
}

// Login authenticates with the backend. On success the session store is
// written before the state flips to Authenticated. The returned error carries
// the backend's message verbatim on rejected credentials.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	res, err := s.api.Login(ctx, email, password)

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if err := s.store.Save(res.Token, s.now().Add(domain.RenewalWindow)); err != nil {
		return nil, err
	}
	s.settle(StateAuthenticated, res.User)
	s.log.Info().Int("user_id", res.User.ID).Str("role", res.User.RoleNom).Msg("logged in")
	return res.User, nil
}

// Logout notifies the backend best-effort and tears down the client session
// unconditionally. Network failure never blocks the teardown.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Debug().Err(err).Msg("server logout failed; proceeding with local teardown")
	}
	_ = s.store.Clear()
	s.settle(StateAnonymous, nil)
	s.log.Info().Msg("logged out")
}

// Invalidate tears down the session in response to an external signal (401
// mid-session, watchdog expiry) and notifies the registered observer. A
// second call while already anonymous is a no-op, so the observer fires at
// most once per session.
func (s *SessionService) Invalidate(reason string) {
	s.mu.Lock()
	if s.state != StateAuthenticated {
		s.mu.Unlock()
		return
	}
	s.state = StateAnonymous
	s.user = nil
	fn := s.onLost
	s.mu.Unlock()

	_ = s.store.Clear()
	s.log.Warn().Str("reason", reason).Msg("session lost")
	if fn != nil {
		fn(reason)
	}
}

// State returns the current lifecycle state.
func (s *SessionService) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the authenticated user, or nil when anonymous. The
// returned value is a copy; the service's record is rebuilt wholesale on each
// (re)authentication.
func (s *SessionService) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Permissions derives the capability set from the current user. Recomputed on
// every call, never cached.
func (s *SessionService) Permissions() domain.PermissionSet {
	return domain.PermissionsFor(s.CurrentUser())
}

// Loading reports whether the initial replay or a login is in flight.
func (s *SessionService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *SessionService) settle(state SessionState, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
	s.loading = false
}
