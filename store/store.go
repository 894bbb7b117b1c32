// Package store holds the post collection and its page cursor. MemoryStore
// keeps everything in process; RemoteStore delegates to the REST backend.
package store

import (
	"context"

	"github.com/rpupo63/notebook/models"
)

// SortNewestFirst is the page order the remote store asks for.
const SortNewestFirst = "createdAt,desc"

// Snapshot is a copy of a store's visible state. Page is 1-indexed and
// TotalPages is never below 1.
type Snapshot struct {
	Posts      []models.Post
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
	Loading    bool
	Err        error
}

// Store is a post collection with a page cursor. Add and Edit ignore a
// blank title, and Edit and Delete ignore an id they do not hold.
type Store interface {
	Snapshot() Snapshot
	Refresh(ctx context.Context) error
	Add(ctx context.Context, title, excerpt string) error
	Edit(ctx context.Context, id int64, title, excerpt string) error
	Delete(ctx context.Context, id int64) error
	ChangePage(ctx context.Context, page int) error
	Subscribe(fn func(Snapshot)) (unsubscribe func())
}

// TokenSource yields the current access token, or "" when signed out.
type TokenSource interface {
	AccessToken() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) AccessToken() string {
	return f()
}

// Backend is the subset of the REST client RemoteStore uses.
type Backend interface {
	ListPosts(ctx context.Context, token string, req models.PageRequest) (models.Page[models.Post], error)
	CreatePost(ctx context.Context, token string, in models.PostInput) (models.Post, error)
	UpdatePost(ctx context.Context, token string, id int64, in models.PostInput) (models.Post, error)
	DeletePost(ctx context.Context, token string, id int64) error
}
