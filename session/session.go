// Package session keeps the signed-in user's tokens and profile and persists
// them between runs.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
)

// Authenticator is the part of the REST client a Session needs.
type Authenticator interface {
	Login(ctx context.Context, in models.Credentials) (models.AuthResponse, error)
	Signup(ctx context.Context, in models.Credentials) (models.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (models.AuthResponse, error)
	Me(ctx context.Context, token string) (models.Profile, error)
}

// State is what a Session persists. User is nil when signed out.
type State struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	User         *models.Profile `json:"user,omitempty"`
}

func (s State) SignedIn() bool {
	return s.AccessToken != ""
}

type Session struct {
	auth   Authenticator
	path   string
	logger zerolog.Logger

	mu    sync.RWMutex
	state State

	subsMu sync.Mutex
	nextID int
	subs   map[int]func(State)
}

type Option func(*Session)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New returns a signed-out session stored at path. An empty path keeps the
// session in memory only.
func New(auth Authenticator, path string, opts ...Option) *Session {
	s := &Session{
		auth:   auth,
		path:   path,
		logger: zerolog.Nop(),
		subs:   map[int]func(State){},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads a previously saved session. A missing file leaves the
// session signed out.
func (s *Session) Restore() error {
	if s.path == "" {
		return nil
	}
	state, err := readState(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	s.set(state)
	s.logger.Debug().Str("path", s.path).Bool("signedIn", state.SignedIn()).Msg("session restored")
	return nil
}

func (s *Session) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", errs.ErrValidation)
	}

	resp, err := s.auth.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	return s.adopt(ctx, resp)
}

// Register creates an account and signs in as it.
func (s *Session) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("%w: username, email and password are required", errs.ErrValidation)
	}

	resp, err := s.auth.Signup(ctx, models.Credentials{Username: username, Email: email, Password: password})
	if err != nil {
		return err
	}
	return s.adopt(ctx, resp)
}

// Renew swaps the refresh token for a fresh token pair. A rejected refresh
// token signs the session out.
func (s *Session) Renew(ctx context.Context) error {
	s.mu.RLock()
	refresh := s.state.RefreshToken
	s.mu.RUnlock()
	if refresh == "" {
		return errs.ErrAuthRequired
	}

	resp, err := s.auth.Refresh(ctx, refresh)
	if err != nil {
		if errs.IsAuthRequired(err) {
			if logoutErr := s.Logout(); logoutErr != nil {
				s.logger.Warn().Err(logoutErr).Msg("failed to clear expired session")
			}
		}
		return err
	}

	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	state.AccessToken = resp.AccessToken
	state.RefreshToken = resp.RefreshToken
	return s.save(state)
}

// Logout forgets the tokens and removes the saved session.
func (s *Session) Logout() error {
	s.set(State{})
	if s.path == "" {
		return nil
	}
	if err := removeState(s.path); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// AccessToken returns the bearer token, or "" when signed out.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AccessToken
}

// User returns the signed-in profile.
func (s *Session) User() (models.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return models.Profile{}, false
	}
	return *s.state.User, true
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe calls fn after every sign in, sign out and renewal.
func (s *Session) Subscribe(fn func(State)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
		})
	}
}

func (s *Session) adopt(ctx context.Context, resp models.AuthResponse) error {
	profile, err := s.auth.Me(ctx, resp.AccessToken)
	if err != nil {
		return err
	}

	s.logger.Info().Str("username", profile.Username).Msg("signed in")
	return s.save(State{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         &profile,
	})
}

// save makes state current and writes it to disk. The in-memory session is
// updated even when the write fails.
func (s *Session) save(state State) error {
	s.set(state)
	if s.path == "" {
		return nil
	}
	if err := writeState(s.path, state); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Session) set(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.subsMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
