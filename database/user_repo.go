package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/notebook/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByID returns a user by id, or nil when no such user exists
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	return r.first(r.db.WithContext(ctx).Where("id = ?", id), &user)
}

// FindByUsername returns a user by username, or nil when no such user exists
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	return r.first(r.db.WithContext(ctx).Where("username = ?", username), &user)
}

// UsernameTaken reports whether another user (any id but exceptID) owns username
func (r *UserRepo) UsernameTaken(ctx context.Context, username string, exceptID int64) (bool, error) {
	return r.exists(ctx, "username = ? AND id <> ?", username, exceptID)
}

// EmailTaken reports whether another user (any id but exceptID) owns email
func (r *UserRepo) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	return r.exists(ctx, "email = ? AND id <> ?", email, exceptID)
}

// Add inserts a new user; the generated id is written back into user
func (r *UserRepo) Add(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update saves every column of user
func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit("Posts").Save(user).Error
}

// Delete removes the user together with every post they own
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

func (r *UserRepo) first(query *gorm.DB, user *models.User) (*models.User, error) {
	err := query.First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where(query, args...).Count(&count).Error
	return count > 0, err
}
