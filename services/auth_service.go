package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/notebook/auth"
	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
)

// UserRepository is the storage the auth and user services need. Lookups
// return nil, nil when nothing matches.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameTaken(ctx context.Context, username string, exceptID int64) (bool, error)
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	Add(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users  UserRepository
	tokens *auth.TokenManager
	logger zerolog.Logger
}

func NewAuthService(users UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: log.With().Str("serviceName", "authService").Logger(),
	}
}

// Signup creates a user and logs them in.
func (s *AuthService) Signup(ctx context.Context, in models.Credentials) (models.AuthResponse, error) {
	in, err := normalizeCredentials(in, true)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if err := ensureAvailable(ctx, s.users, in, 0); err != nil {
		return models.AuthResponse{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.AuthResponse{}, errs.NewInternalErrorWithCause("hash password", err)
	}
	user := models.User{Username: in.Username, Email: in.Email, PasswordHash: hash}
	if err := s.users.Add(ctx, &user); err != nil {
		return models.AuthResponse{}, errs.NewDatabaseError("create", "user", err)
	}
	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("user registered")

	return s.issue(user)
}

// Login checks a username and password.
func (s *AuthService) Login(ctx context.Context, in models.Credentials) (models.AuthResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return models.AuthResponse{}, errs.NewInvalidCredentialsError()
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return models.AuthResponse{}, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, in.Password) {
		return models.AuthResponse{}, errs.NewInvalidCredentialsError()
	}
	return s.issue(*user)
}

// Refresh trades a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (models.AuthResponse, error) {
	userID, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return models.AuthResponse{}, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.AuthResponse{}, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return models.AuthResponse{}, errs.NewInvalidTokenError()
	}
	return s.issue(*user)
}

// Authenticate resolves an access token to a user id.
func (s *AuthService) Authenticate(token string) (int64, error) {
	return s.tokens.ParseAccess(token)
}

// Profile returns the public view of the authenticated user.
func (s *AuthService) Profile(ctx context.Context, userID int64) (models.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.Profile{}, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return models.Profile{}, errs.NewInvalidTokenError()
	}
	return user.Profile(), nil
}

func (s *AuthService) issue(user models.User) (models.AuthResponse, error) {
	resp, err := s.tokens.Issue(user)
	if err != nil {
		return models.AuthResponse{}, errs.NewInternalErrorWithCause("issue tokens", err)
	}
	return resp, nil
}

// ensureAvailable fails with 409 when the username or email belongs to a
// user other than exceptID.
func ensureAvailable(ctx context.Context, users UserRepository, in models.Credentials, exceptID int64) error {
	taken, err := users.UsernameTaken(ctx, in.Username, exceptID)
	if err != nil {
		return errs.NewDatabaseError("check", "username", err)
	}
	if taken {
		return errs.NewUniqueConstraintViolationError("user", "username", nil)
	}

	taken, err = users.EmailTaken(ctx, in.Email, exceptID)
	if err != nil {
		return errs.NewDatabaseError("check", "email", err)
	}
	if taken {
		return errs.NewUniqueConstraintViolationError("user", "email", nil)
	}
	return nil
}
