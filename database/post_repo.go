package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/notebook/models"
)

// Order is a single ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *PostRepo) GetDB() *gorm.DB {
	return r.db
}

// FindPageByUser returns one page of the user's posts along with the total
// number of posts the user owns. Ties on the order column fall back to id
// so pages never overlap.
func (r *PostRepo) FindPageByUser(ctx context.Context, userID int64, order Order, offset, limit int) ([]models.Post, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := []models.Post{}
	if total == 0 {
		return posts, 0, nil
	}
	err := pageQuery(db, userID, order, offset, limit).Find(&posts).Error
	return posts, total, err
}

func pageQuery(db *gorm.DB, userID int64, order Order, offset, limit int) *gorm.DB {
	return db.Model(&models.Post{}).
		Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: order.Column}, Desc: order.Desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: order.Desc}).
		Offset(offset).
		Limit(limit)
}

// FindByID returns a post by its ID, or nil when it does not exist
func (r *PostRepo) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a new post; the generated id is written back into post
func (r *PostRepo) Add(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update updates an existing post in the database
func (r *PostRepo) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes a post from the database by id
func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}
