package api

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rpupo63/notebook/database"
	"github.com/rpupo63/notebook/models"
)

// memoryRepo is an in-memory stand-in for the GORM repositories.
type memoryRepo struct {
	mu     sync.Mutex
	posts  map[int64]models.Post
	users  map[int64]models.User
	nextID int64
	clock  time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		posts: map[int64]models.Post{},
		users: map[int64]models.User{},
		clock: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryRepo) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryRepo) FindPageByUser(_ context.Context, userID int64, order database.Order, offset, limit int) ([]models.Post, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var owned []models.Post
	for _, p := range m.posts {
		if p.UserID == userID {
			owned = append(owned, p)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		less := owned[i].CreatedAt.Before(owned[j].CreatedAt) ||
			(owned[i].CreatedAt.Equal(owned[j].CreatedAt) && owned[i].ID < owned[j].ID)
		if order.Desc {
			return !less
		}
		return less
	})

	total := int64(len(owned))
	if offset >= len(owned) {
		return []models.Post{}, total, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], total, nil
}

func (m *memoryRepo) FindByID(_ context.Context, id int64) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memoryRepo) Add(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post.ID = m.id()
	m.clock = m.clock.Add(time.Minute)
	post.CreatedAt = m.clock
	m.posts[post.ID] = *post
	return nil
}

func (m *memoryRepo) Update(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[post.ID] = *post
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.posts, id)
	return nil
}

// userRepo views the same store through the UserRepository method set.
type userRepo struct{ *memoryRepo }

func (u userRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (u userRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, user := range u.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, nil
}

func (u userRepo) UsernameTaken(_ context.Context, username string, exceptID int64) (bool, error) {
	return u.taken(func(user models.User) bool { return user.Username == username }, exceptID), nil
}

func (u userRepo) EmailTaken(_ context.Context, email string, exceptID int64) (bool, error) {
	return u.taken(func(user models.User) bool { return strings.EqualFold(user.Email, email) }, exceptID), nil
}

func (u userRepo) taken(match func(models.User) bool, exceptID int64) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	for id, user := range u.users {
		if id != exceptID && match(user) {
			return true
		}
	}
	return false
}

func (u userRepo) Add(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	user.ID = u.id()
	u.users[user.ID] = *user
	return nil
}

func (u userRepo) Update(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.users[user.ID] = *user
	return nil
}

func (u userRepo) Delete(_ context.Context, id int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.users, id)
	for pid, p := range u.posts {
		if p.UserID == id {
			delete(u.posts, pid)
		}
	}
	return nil
}
