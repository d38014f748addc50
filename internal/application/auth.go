package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
	"github.com/bkeenke/bkcloud-cli/internal/ports"
	"go.uber.org/zap"
)

// AuthState is the snapshot the UI renders from: either an authenticated
// user, a pending bootstrap, or an error the user has to act on.
type AuthState struct {
	Authenticated bool
	Loading       bool
	Hosted        bool
	User          domain.User
	SessionID     domain.SessionID
	Err           error
}

// AuthService owns the session lifecycle: bootstrap on startup, credential
// login and registration, logout, and the forced logout when a session stops
// being accepted mid-run.
type AuthService struct {
	auth    ports.AuthAPI
	users   ports.UserAPI
	carrier ports.SessionCarrier
	store   ports.SessionStore
	bridge  ports.HostBridge
	clock   ports.Clock
	log     *zap.Logger

	mu          sync.RWMutex
	state       AuthState
	canRegister bool
}

func NewAuthService(
	auth ports.AuthAPI,
	users ports.UserAPI,
	carrier ports.SessionCarrier,
	store ports.SessionStore,
	bridge ports.HostBridge,
	clock ports.Clock,
	log *zap.Logger,
) *AuthService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		auth:    auth,
		users:   users,
		carrier: carrier,
		store:   store,
		bridge:  bridge,
		clock:   clock,
		log:     log,
		state:   AuthState{Loading: true, Hosted: bridge.Hosted()},
	}
}

func (s *AuthService) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CanRegister reports whether the standalone bootstrap probe found
// self-registration open. Defaults to closed until Bootstrap runs.
func (s *AuthService) CanRegister() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canRegister
}

// Bootstrap establishes the initial auth state. In hosted mode it exchanges
// host init data for a session; standalone it tries the stored session and
// probes registration availability. Never returns an error: failures land in
// the returned state so the UI can show them.
func (s *AuthService) Bootstrap(ctx context.Context) AuthState {
	if s.bridge.Hosted() {
		return s.bootstrapHosted(ctx)
	}
	return s.bootstrapStandalone(ctx)
}

func (s *AuthService) bootstrapHosted(ctx context.Context) AuthState {
	s.bridge.Ready()
	s.bridge.Expand()
	s.bridge.SetHeaderColor("#000000")
	s.bridge.SetBackgroundColor("#000000")

	id, err := s.auth.TelegramAuth(ctx, s.bridge.InitData())
	if err != nil {
		s.log.Warn("telegram auth failed", zap.Error(err))
		return s.setState(AuthState{Hosted: true, Err: fmt.Errorf("авторизация не удалась: %w", err)})
	}

	s.carrier.SetSession(id)
	user, err := s.users.Profile(ctx)
	if err != nil {
		s.carrier.ClearSession()
		s.log.Warn("profile after telegram auth failed", zap.Error(err))
		return s.setState(AuthState{Hosted: true, Err: fmt.Errorf("загрузка профиля не удалась: %w", err)})
	}

	s.persistSession(ctx, id, user.Login)
	return s.setState(AuthState{Authenticated: true, Hosted: true, User: user, SessionID: id})
}

func (s *AuthService) bootstrapStandalone(ctx context.Context) AuthState {
	state := AuthState{}

	stored, err := s.store.Load(ctx)
	switch {
	case err == nil:
		s.carrier.SetSession(stored.ID)
		user, perr := s.users.Profile(ctx)
		if perr == nil {
			state = AuthState{Authenticated: true, User: user, SessionID: stored.ID}
		} else {
			// Stale session: drop it locally and fall through to the
			// login screen without surfacing an error.
			s.log.Debug("stored session rejected", zap.Error(perr))
			s.carrier.ClearSession()
			if cerr := s.store.Clear(ctx); cerr != nil {
				s.log.Warn("clear stale session", zap.Error(cerr))
			}
		}
	case !errors.Is(err, domain.ErrNoSession):
		s.log.Warn("load stored session", zap.Error(err))
	}

	open := s.auth.RegistrationOpen(ctx)
	s.mu.Lock()
	s.canRegister = open
	s.mu.Unlock()

	return s.setState(state)
}

// Login exchanges credentials for a session and loads the profile. The auth
// state is only advanced on full success.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (AuthState, error) {
	if err := creds.Validate(); err != nil {
		return s.State(), err
	}

	id, err := s.auth.Login(ctx, creds)
	if err != nil {
		return s.State(), err
	}

	s.carrier.SetSession(id)
	user, err := s.users.Profile(ctx)
	if err != nil {
		s.carrier.ClearSession()
		return s.State(), fmt.Errorf("load profile: %w", err)
	}

	s.persistSession(ctx, id, user.Login)
	return s.setState(AuthState{
		Authenticated: true,
		Hosted:        s.bridge.Hosted(),
		User:          user,
		SessionID:     id,
	}), nil
}

// Register creates the account and immediately logs in with the same
// credentials.
func (s *AuthService) Register(ctx context.Context, creds domain.Credentials, confirm string) (AuthState, error) {
	if !s.CanRegister() {
		return s.State(), domain.ErrRegistrationClosed
	}
	if err := domain.ValidateRegistration(creds, confirm); err != nil {
		return s.State(), err
	}

	if _, err := s.users.Register(ctx, creds); err != nil {
		return s.State(), fmt.Errorf("register: %w", err)
	}
	return s.Login(ctx, creds)
}

// Logout drops the session locally. The backend keeps no revocation API, so
// forgetting the id is the whole operation.
func (s *AuthService) Logout(ctx context.Context) AuthState {
	s.carrier.ClearSession()
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn("clear stored session", zap.Error(err))
	}
	return s.setState(AuthState{Hosted: s.bridge.Hosted()})
}

// RefreshUser re-reads the profile for the current session. A failed refresh
// means the session is no longer accepted and forces a logout.
func (s *AuthService) RefreshUser(ctx context.Context) AuthState {
	if !s.State().Authenticated {
		return s.State()
	}

	user, err := s.users.Profile(ctx)
	if err != nil {
		s.log.Info("session no longer accepted, logging out", zap.Error(err))
		return s.Logout(ctx)
	}

	s.mu.Lock()
	s.state.User = user
	state := s.state
	s.mu.Unlock()
	return state
}

func (s *AuthService) persistSession(ctx context.Context, id domain.SessionID, login string) {
	err := s.store.Save(ctx, domain.Session{ID: id, Login: login, ObtainedAt: s.clock.Now()})
	if err != nil {
		s.log.Warn("persist session", zap.Error(err))
	}
}

func (s *AuthService) setState(state AuthState) AuthState {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return state
}
