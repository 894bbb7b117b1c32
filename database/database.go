package database

import (
	"context"

	"gorm.io/gorm"
)

type Database struct {
	db       *gorm.DB
	postRepo *PostRepo
	userRepo *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:       db,
		postRepo: NewPostRepo(db),
		userRepo: NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// Ping checks that the database answers queries
func (d Database) Ping(ctx context.Context) error {
	var result int
	return d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
}
