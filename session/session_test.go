package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/notebook/client"
	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
)

// newTestBackend answers the auth routes for a single user "ada".
func newTestBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	issue := func(w http.ResponseWriter) {
		json.NewEncoder(w).Encode(models.AuthResponse{AccessToken: "access-1", RefreshToken: "refresh-1", TokenType: "Bearer", ExpiresIn: 900})
	}
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in models.Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Username != "ada" || in.Password != "secret-pass" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		issue(w)
	})
	mux.HandleFunc("/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		var in models.Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Username != "ada" {
			w.WriteHeader(http.StatusConflict)
			return
		}
		issue(w)
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(models.Profile{ID: 1, Username: "ada", Email: "ada@example.com", Authorities: []string{}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	srv := newTestBackend(t)
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s := New(client.New(srv.URL), path)
	var notified []State
	s.Subscribe(func(st State) { notified = append(notified, st) })

	require.NoError(t, s.Login(ctx, " ada ", "secret-pass"))

	assert.Equal(t, "access-1", s.AccessToken())
	user, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "ada", user.Username)
	require.Len(t, notified, 1)
	assert.True(t, notified[0].SignedIn())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	restored := New(client.New(srv.URL), path)
	require.NoError(t, restored.Restore())
	assert.Equal(t, s.State(), restored.State())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files left behind")
}

func TestLoginRejected(t *testing.T) {
	srv := newTestBackend(t)
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(client.New(srv.URL), path)

	err := s.Login(context.Background(), "ada", "wrong-pass")
	assert.True(t, errs.IsAuthRequired(err))
	assert.Empty(t, s.AccessToken())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	srv := newTestBackend(t)

	tests := []struct {
		name     string
		username string
		email    string
		password string
		check    func(t *testing.T, err error)
	}{
		{"success", "ada", "ada@example.com", "secret-pass", func(t *testing.T, err error) {
			assert.NoError(t, err)
		}},
		{"taken", "grace", "grace@example.com", "secret-pass", func(t *testing.T, err error) {
			var backendErr *errs.BackendError
			require.ErrorAs(t, err, &backendErr)
			assert.Equal(t, http.StatusConflict, backendErr.StatusCode)
		}},
		{"missing email", "ada", " ", "secret-pass", func(t *testing.T, err error) {
			assert.True(t, errs.IsValidation(err))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(client.New(srv.URL), "")
			tt.check(t, s.Register(ctx, tt.username, tt.email, tt.password))
		})
	}
}

func TestLoginValidation(t *testing.T) {
	auth := new(mockAuthenticator)
	s := New(auth, "")

	assert.True(t, errs.IsValidation(s.Login(context.Background(), "  ", "pw")))
	assert.True(t, errs.IsValidation(s.Login(context.Background(), "ada", "")))
	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestLogout(t *testing.T) {
	srv := newTestBackend(t)
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(client.New(srv.URL), path)
	require.NoError(t, s.Login(context.Background(), "ada", "secret-pass"))

	var last State
	s.Subscribe(func(st State) { last = st })
	require.NoError(t, s.Logout())

	assert.False(t, last.SignedIn())
	assert.Empty(t, s.AccessToken())
	_, ok := s.User()
	assert.False(t, ok)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Logout())
}

func TestRestoreMissingFile(t *testing.T) {
	s := New(new(mockAuthenticator), filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, s.Restore())
	assert.False(t, s.State().SignedIn())
}

func TestRestoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := New(new(mockAuthenticator), path)
	assert.Error(t, s.Restore())
	assert.False(t, s.State().SignedIn())
}

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Login(ctx context.Context, in models.Credentials) (models.AuthResponse, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.AuthResponse), args.Error(1)
}

func (m *mockAuthenticator) Signup(ctx context.Context, in models.Credentials) (models.AuthResponse, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.AuthResponse), args.Error(1)
}

func (m *mockAuthenticator) Refresh(ctx context.Context, refreshToken string) (models.AuthResponse, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(models.AuthResponse), args.Error(1)
}

func (m *mockAuthenticator) Me(ctx context.Context, token string) (models.Profile, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(models.Profile), args.Error(1)
}

func TestRenew(t *testing.T) {
	ctx := context.Background()
	profile := models.Profile{ID: 1, Username: "ada"}

	t.Run("rotates tokens", func(t *testing.T) {
		auth := new(mockAuthenticator)
		auth.On("Login", ctx, models.Credentials{Username: "ada", Password: "pw"}).
			Return(models.AuthResponse{AccessToken: "a1", RefreshToken: "r1"}, nil)
		auth.On("Me", ctx, "a1").Return(profile, nil)
		auth.On("Refresh", ctx, "r1").Return(models.AuthResponse{AccessToken: "a2", RefreshToken: "r2"}, nil)

		s := New(auth, filepath.Join(t.TempDir(), "session.json"))
		require.NoError(t, s.Login(ctx, "ada", "pw"))
		require.NoError(t, s.Renew(ctx))

		st := s.State()
		assert.Equal(t, "a2", st.AccessToken)
		assert.Equal(t, "r2", st.RefreshToken)
		assert.Equal(t, &profile, st.User)
		auth.AssertExpectations(t)
	})

	t.Run("rejected refresh signs out", func(t *testing.T) {
		auth := new(mockAuthenticator)
		auth.On("Login", ctx, mock.Anything).Return(models.AuthResponse{AccessToken: "a1", RefreshToken: "r1"}, nil)
		auth.On("Me", ctx, "a1").Return(profile, nil)
		auth.On("Refresh", ctx, "r1").Return(models.AuthResponse{}, errs.NewBackendError("refresh session", http.StatusUnauthorized))

		s := New(auth, "")
		require.NoError(t, s.Login(ctx, "ada", "pw"))

		err := s.Renew(ctx)
		assert.True(t, errs.IsAuthRequired(err))
		assert.False(t, s.State().SignedIn())
	})

	t.Run("signed out", func(t *testing.T) {
		s := New(new(mockAuthenticator), "")
		assert.ErrorIs(t, s.Renew(ctx), errs.ErrAuthRequired)
	})
}
