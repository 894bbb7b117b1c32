package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/notebook/database"
	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSort     = "createdAt,desc"
)

// sortColumns maps the sortable JSON field names onto table columns.
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"lastUpdatedAt": "last_updated_at",
	"title":         "title",
	"id":            "id",
}

// PostRepository is the storage PostService needs. FindByID returns nil, nil
// for an unknown id.
type PostRepository interface {
	FindPageByUser(ctx context.Context, userID int64, order database.Order, offset, limit int) ([]models.Post, int64, error)
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	Add(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
}

// PostService implements ownership-checked post CRUD for authenticated users.
type PostService struct {
	posts  PostRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewPostService(posts PostRepository) *PostService {
	return &PostService{
		posts:  posts,
		logger: log.With().Str("serviceName", "postService").Logger(),
		now:    time.Now,
	}
}

// ParseSort turns "field,direction" into an ORDER BY term. The direction
// defaults to ascending; an empty string yields the default sort.
func ParseSort(sort string) (database.Order, error) {
	if strings.TrimSpace(sort) == "" {
		sort = DefaultSort
	}
	field, dir, _ := strings.Cut(sort, ",")
	column, ok := sortColumns[strings.TrimSpace(field)]
	if !ok {
		return database.Order{}, errs.NewInvalidFieldError("sort", fmt.Sprintf("cannot sort by %q", field))
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
		return database.Order{Column: column}, nil
	case "desc":
		return database.Order{Column: column, Desc: true}, nil
	}
	return database.Order{}, errs.NewInvalidFieldError("sort", fmt.Sprintf("unknown direction %q", dir))
}

// NormalizePageRequest clamps page and size into their accepted ranges.
func NormalizePageRequest(req models.PageRequest) models.PageRequest {
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Size <= 0 {
		req.Size = DefaultPageSize
	}
	if req.Size > MaxPageSize {
		req.Size = MaxPageSize
	}
	return req
}

// List returns one page of the user's own posts.
func (s *PostService) List(ctx context.Context, userID int64, req models.PageRequest) (models.Page[models.Post], error) {
	req = NormalizePageRequest(req)
	order, err := ParseSort(req.Sort)
	if err != nil {
		return models.Page[models.Post]{}, err
	}

	posts, total, err := s.posts.FindPageByUser(ctx, userID, order, req.Page*req.Size, req.Size)
	if err != nil {
		return models.Page[models.Post]{}, errs.NewDatabaseError("find", "posts", err)
	}
	return models.NewPage(posts, req.Page, req.Size, total), nil
}

// Create stores a new post owned by userID.
func (s *PostService) Create(ctx context.Context, userID int64, in models.PostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errs.NewMissingRequiredFieldError("title")
	}

	post := models.NewPost(0, strings.TrimSpace(in.Title), in.Body(), s.now())
	post.UserID = userID
	applyDerivedOverrides(&post, in)

	if err := s.posts.Add(ctx, &post); err != nil {
		return nil, errs.NewDatabaseError("create", "post", err)
	}
	s.logger.Debug().Int64("postID", post.ID).Int64("userID", userID).Msg("post created")
	return &post, nil
}

// Update replaces the title and body of a post the user owns.
func (s *PostService) Update(ctx context.Context, userID, postID int64, in models.PostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errs.NewMissingRequiredFieldError("title")
	}

	post, err := s.owned(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	post.Revise(strings.TrimSpace(in.Title), in.Body())
	applyDerivedOverrides(post, in)

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, errs.NewDatabaseError("update", "post", err)
	}
	return post, nil
}

// Delete removes a post the user owns.
func (s *PostService) Delete(ctx context.Context, userID, postID int64) error {
	if _, err := s.owned(ctx, userID, postID); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return errs.NewDatabaseError("delete", "post", err)
	}
	s.logger.Debug().Int64("postID", postID).Int64("userID", userID).Msg("post deleted")
	return nil
}

func (s *PostService) owned(ctx context.Context, userID, postID int64) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}
	if post == nil {
		return nil, errs.NewNotFound("post")
	}
	if post.UserID != userID {
		return nil, errs.NewNotOwnerError("posts")
	}
	return post, nil
}

// applyDerivedOverrides keeps a client-supplied tag or read time when it is
// usable.
func applyDerivedOverrides(post *models.Post, in models.PostInput) {
	if in.Tag.Valid() {
		post.Tag = in.Tag
	}
	if rt := strings.TrimSpace(in.ReadTime); rt != "" {
		post.ReadTime = rt
	}
}
