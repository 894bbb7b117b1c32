package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
)

// DefaultRemotePageSize is the page size of a RemoteStore unless overridden.
const DefaultRemotePageSize = 10

// RemoteStore mirrors one page of the signed-in user's posts from the
// backend. Mutations run one at a time; a fetch started later always wins
// over one started earlier.
type RemoteStore struct {
	backend  Backend
	tokens   TokenSource
	pageSize int
	logger   zerolog.Logger
	mutation *semaphore.Weighted

	mu          sync.Mutex
	page        int // 0-indexed
	posts       []models.Post
	totalItems  int
	totalPages  int
	loading     bool
	err         error
	seq         uint64
	cancelFetch context.CancelFunc

	subs subscribers
}

type RemoteOption func(*RemoteStore)

func WithRemotePageSize(size int) RemoteOption {
	return func(s *RemoteStore) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

func WithRemoteLogger(logger zerolog.Logger) RemoteOption {
	return func(s *RemoteStore) {
		s.logger = logger
	}
}

func NewRemoteStore(backend Backend, tokens TokenSource, opts ...RemoteOption) *RemoteStore {
	s := &RemoteStore{
		backend:  backend,
		tokens:   tokens,
		pageSize: DefaultRemotePageSize,
		logger:   zerolog.Nop(),
		mutation: semaphore.NewWeighted(1),
		posts:    []models.Post{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RemoteStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *RemoteStore) snapshotLocked() Snapshot {
	pages := s.totalPages
	if pages < 1 {
		pages = 1
	}
	return Snapshot{
		Posts:      append([]models.Post{}, s.posts...),
		Page:       s.page + 1,
		PageSize:   s.pageSize,
		TotalItems: s.totalItems,
		TotalPages: pages,
		Loading:    s.loading,
		Err:        s.err,
	}
}

// Refresh fetches the current page. Without a token it does nothing. A
// failure is recorded in Err, leaves the previous posts in place and is
// returned. A result overtaken by a newer fetch is dropped and Refresh
// returns nil.
func (s *RemoteStore) Refresh(ctx context.Context) error {
	token := s.tokens.AccessToken()
	if token == "" {
		return nil
	}

	s.mu.Lock()
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	s.seq++
	seq := s.seq
	page := s.page
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.cancelFetch = cancel
	s.loading = true
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.subs.notify(snap)

	s.logger.Debug().Int("page", page).Uint64("seq", seq).Msg("fetching posts")
	result, err := s.backend.ListPosts(fetchCtx, token, models.PageRequest{
		Page: page,
		Size: s.pageSize,
		Sort: SortNewestFirst,
	})

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		s.logger.Debug().Uint64("seq", seq).Msg("discarding stale page")
		return nil
	}
	s.cancelFetch = nil
	s.loading = false

	if err != nil {
		if ctx.Err() == nil {
			s.err = err
		}
		snap = s.snapshotLocked()
		s.mu.Unlock()
		s.logger.Warn().Err(err).Int("page", page).Msg("failed to fetch posts")
		s.subs.notify(snap)
		return err
	}

	s.posts = result.Content
	if s.posts == nil {
		s.posts = []models.Post{}
	}
	s.totalItems = int(result.TotalElements)
	s.totalPages = result.TotalPages
	s.err = nil

	// The page vanished under us (posts deleted elsewhere): step back to the
	// last page that exists.
	last := s.totalPages - 1
	if last < 0 {
		last = 0
	}
	stepBack := s.page > last
	if stepBack {
		s.page = last
	}
	snap = s.snapshotLocked()
	s.mu.Unlock()
	s.subs.notify(snap)

	if stepBack {
		return s.Refresh(ctx)
	}
	return nil
}

// TokenChanged reacts to sign in and sign out. A new token starts again from
// the first page; a cleared token cancels any fetch and empties the store.
func (s *RemoteStore) TokenChanged(ctx context.Context) error {
	s.mu.Lock()
	s.page = 0
	if s.tokens.AccessToken() != "" {
		s.mu.Unlock()
		return s.Refresh(ctx)
	}

	if s.cancelFetch != nil {
		s.cancelFetch()
		s.cancelFetch = nil
	}
	s.seq++
	s.posts = []models.Post{}
	s.totalItems = 0
	s.totalPages = 0
	s.loading = false
	s.err = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.subs.notify(snap)
	return nil
}

// Add creates a post and shows page 1, re-fetched from the backend. Once the
// backend accepted the post Add succeeds; a failed re-fetch only shows in Err.
func (s *RemoteStore) Add(ctx context.Context, title, excerpt string) error {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	token, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer s.mutation.Release(1)

	if _, err := s.backend.CreatePost(ctx, token, postInput(title, excerpt)); err != nil {
		return s.fail(ctx, err)
	}

	s.mu.Lock()
	s.page = 0
	s.mu.Unlock()
	s.reload(ctx)
	return nil
}

// Edit replaces a post on the current page with the backend's version.
func (s *RemoteStore) Edit(ctx context.Context, id int64, title, excerpt string) error {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	token, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer s.mutation.Release(1)

	if !s.onPage(id) {
		return nil
	}

	updated, err := s.backend.UpdatePost(ctx, token, id, postInput(title, excerpt))
	if err != nil {
		return s.fail(ctx, err)
	}

	s.mu.Lock()
	if i := indexOf(s.posts, id); i >= 0 {
		s.posts[i] = updated
	}
	s.err = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.subs.notify(snap)
	return nil
}

// Delete removes a post on the current page. Removing the only post of a
// later page moves back one page. Like Add, a failed re-fetch after the
// backend deleted the post only shows in Err.
func (s *RemoteStore) Delete(ctx context.Context, id int64) error {
	token, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer s.mutation.Release(1)

	if !s.onPage(id) {
		return nil
	}

	if err := s.backend.DeletePost(ctx, token, id); err != nil {
		return s.fail(ctx, err)
	}

	s.mu.Lock()
	if len(s.posts) == 1 && s.page > 0 {
		s.page--
	}
	s.mu.Unlock()
	s.reload(ctx)
	return nil
}

// ChangePage moves to page, clamped into [1, TotalPages], and fetches it.
func (s *RemoteStore) ChangePage(ctx context.Context, page int) error {
	s.mu.Lock()
	page = clampPage(page, s.totalPages) - 1
	if page == s.page {
		s.mu.Unlock()
		return nil
	}
	s.page = page
	s.mu.Unlock()

	return s.Refresh(ctx)
}

func (s *RemoteStore) Subscribe(fn func(Snapshot)) func() {
	return s.subs.add(fn)
}

func (s *RemoteStore) onPage(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.posts, id) >= 0
}

// acquire waits for the mutation slot and then reads the token, so a sign
// out while queued is seen. The caller releases the slot on success.
func (s *RemoteStore) acquire(ctx context.Context) (string, error) {
	if err := s.mutation.Acquire(ctx, 1); err != nil {
		return "", err
	}
	token := s.tokens.AccessToken()
	if token == "" {
		s.mutation.Release(1)
		return "", errs.ErrAuthRequired
	}
	return token, nil
}

// reload re-fetches the page after a committed mutation. Refresh records a
// failure in Err.
func (s *RemoteStore) reload(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("reload after mutation failed")
	}
}

// fail records err unless the caller gave up, and returns it.
func (s *RemoteStore) fail(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return err
	}

	s.mu.Lock()
	s.err = err
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Warn().Err(err).Msg("post mutation failed")
	s.subs.notify(snap)
	return err
}

// postInput builds the request body; tag and read time are precomputed so
// the backend can keep them.
func postInput(title, excerpt string) models.PostInput {
	body := models.DefaultExcerpt(excerpt)
	text := title + " " + body
	return models.PostInput{
		Title:    title,
		Excerpt:  body,
		Tag:      models.InferTag(text),
		ReadTime: models.EstimateReadTime(text),
	}
}
