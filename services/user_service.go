package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/notebook/auth"
	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
)

// UserService lets a user change or remove their own account.
type UserService struct {
	users  UserRepository
	logger zerolog.Logger
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{
		users:  users,
		logger: log.With().Str("serviceName", "userService").Logger(),
	}
}

// Update changes username and email, and the password when one is given.
func (s *UserService) Update(ctx context.Context, callerID, userID int64, in models.Credentials) (models.Profile, error) {
	if callerID != userID {
		return models.Profile{}, errs.NewNotOwnerError("account")
	}
	in, err := normalizeCredentials(in, false)
	if err != nil {
		return models.Profile{}, err
	}

	user, err := s.find(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}
	if err := ensureAvailable(ctx, s.users, in, userID); err != nil {
		return models.Profile{}, err
	}

	user.Username = in.Username
	user.Email = in.Email
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return models.Profile{}, errs.NewInternalErrorWithCause("hash password", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return models.Profile{}, errs.NewDatabaseError("update", "user", err)
	}
	return user.Profile(), nil
}

// Delete removes the account and every post it owns.
func (s *UserService) Delete(ctx context.Context, callerID, userID int64) error {
	if callerID != userID {
		return errs.NewNotOwnerError("account")
	}
	if _, err := s.find(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return errs.NewDatabaseError("delete", "user", err)
	}
	s.logger.Info().Int64("userID", userID).Msg("user deleted")
	return nil
}

func (s *UserService) find(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return nil, errs.NewNotFound("user")
	}
	return user, nil
}
