package api

import (
	"context"

	"github.com/rpupo63/notebook/models"
)

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// PostService is the post logic the handlers call into.
type PostService interface {
	List(ctx context.Context, userID int64, req models.PageRequest) (models.Page[models.Post], error)
	Create(ctx context.Context, userID int64, in models.PostInput) (*models.Post, error)
	Update(ctx context.Context, userID, postID int64, in models.PostInput) (*models.Post, error)
	Delete(ctx context.Context, userID, postID int64) error
}

// AuthService issues tokens and resolves them back to users.
type AuthService interface {
	Signup(ctx context.Context, in models.Credentials) (models.AuthResponse, error)
	Login(ctx context.Context, in models.Credentials) (models.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (models.AuthResponse, error)
	Authenticate(token string) (int64, error)
	Profile(ctx context.Context, userID int64) (models.Profile, error)
}

// UserService manages the caller's own account.
type UserService interface {
	Update(ctx context.Context, callerID, userID int64, in models.Credentials) (models.Profile, error)
	Delete(ctx context.Context, callerID, userID int64) error
}

// Services bundles everything the router needs. Ping may be nil.
type Services struct {
	Posts PostService
	Auth  AuthService
	Users UserService
	Ping  func(ctx context.Context) error
}
