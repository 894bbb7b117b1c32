package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpupo63/notebook/models"
)

// DefaultMemoryPageSize is the page size of a MemoryStore unless overridden.
const DefaultMemoryPageSize = 4

// MemoryStore keeps the whole collection in process, newest first.
type MemoryStore struct {
	mu       sync.Mutex
	posts    []models.Post
	page     int
	pageSize int
	lastID   int64
	now      func() time.Time
	logger   zerolog.Logger

	subs subscribers
}

type MemoryOption func(*MemoryStore)

func WithMemoryPageSize(size int) MemoryOption {
	return func(s *MemoryStore) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// WithPosts seeds the store. posts must already be newest first.
func WithPosts(posts []models.Post) MemoryOption {
	return func(s *MemoryStore) {
		s.posts = append([]models.Post(nil), posts...)
	}
}

func WithMemoryLogger(logger zerolog.Logger) MemoryOption {
	return func(s *MemoryStore) {
		s.logger = logger
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		page:     1,
		pageSize: DefaultMemoryPageSize,
		now:      time.Now,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, p := range s.posts {
		if p.ID > s.lastID {
			s.lastID = p.ID
		}
	}
	return s
}

func (s *MemoryStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *MemoryStore) snapshotLocked() Snapshot {
	return Snapshot{
		Posts:      window(s.posts, s.page, s.pageSize),
		Page:       s.page,
		PageSize:   s.pageSize,
		TotalItems: len(s.posts),
		TotalPages: totalPages(len(s.posts), s.pageSize),
	}
}

// Refresh is a no-op; the memory store is always current.
func (s *MemoryStore) Refresh(context.Context) error {
	return nil
}

// Add prepends a new post and shows page 1.
func (s *MemoryStore) Add(_ context.Context, title, excerpt string) error {
	if strings.TrimSpace(title) == "" {
		return nil
	}

	s.mu.Lock()
	s.lastID++
	post := models.NewPost(s.lastID, title, excerpt, s.now())
	s.posts = append([]models.Post{post}, s.posts...)
	s.page = 1
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug().Int64("postID", post.ID).Str("tag", post.Tag.String()).Msg("post added")
	s.subs.notify(snap)
	return nil
}

// Edit rewrites a post in place, keeping its id, date and position.
func (s *MemoryStore) Edit(_ context.Context, id int64, title, excerpt string) error {
	if strings.TrimSpace(title) == "" {
		return nil
	}

	s.mu.Lock()
	i := indexOf(s.posts, id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.posts[i].Revise(title, excerpt)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.subs.notify(snap)
	return nil
}

// Delete removes a post and pulls the page back if it no longer exists.
func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	i := indexOf(s.posts, id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.posts = append(s.posts[:i:i], s.posts[i+1:]...)
	s.page = clampPage(s.page, totalPages(len(s.posts), s.pageSize))
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug().Int64("postID", id).Msg("post deleted")
	s.subs.notify(snap)
	return nil
}

// ChangePage moves to page, clamped into [1, TotalPages].
func (s *MemoryStore) ChangePage(_ context.Context, page int) error {
	s.mu.Lock()
	page = clampPage(page, totalPages(len(s.posts), s.pageSize))
	if page == s.page {
		s.mu.Unlock()
		return nil
	}
	s.page = page
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.subs.notify(snap)
	return nil
}

func (s *MemoryStore) Subscribe(fn func(Snapshot)) func() {
	return s.subs.add(fn)
}
