package store

import (
	"context"
	"sort"
	"sync"

	"github.com/Brianali-codes/Remaya-full/internal/core"
)

// Memory is an in-process store used by tests and `serve --dev`.
// All maps are guarded by a single lock; write races between
// concurrent requests resolve last-write-wins like the SQL store.
type Memory struct {
	mu       sync.RWMutex
	blogs    map[string]core.BlogPost
	profiles map[string]core.Profile
	users    map[string]core.User // keyed by email
}

var (
	_ core.BlogStore    = (*Memory)(nil)
	_ core.ProfileStore = (*Memory)(nil)
	_ core.UserStore    = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{
		blogs:    make(map[string]core.BlogPost),
		profiles: make(map[string]core.Profile),
		users:    make(map[string]core.User),
	}
}

func (m *Memory) CreateBlog(_ context.Context, post *core.BlogPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blogs[post.ID] = *post
	return nil
}

func (m *Memory) GetBlog(_ context.Context, id string) (*core.BlogPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	post, ok := m.blogs[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &post, nil
}

func (m *Memory) ListBlogs(_ context.Context, filter core.BlogFilter) ([]core.BlogPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	posts := make([]core.BlogPost, 0)
	for _, post := range m.blogs {
		if filter.AuthorID != "" && post.AuthorID != filter.AuthorID {
			continue
		}
		if filter.AdminOnly && !post.IsAdminPost {
			continue
		}
		posts = append(posts, post)
	}

	// newest first, matching the SQL ordering
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (m *Memory) UpdateBlog(_ context.Context, post *core.BlogPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blogs[post.ID]; !ok {
		return core.ErrNotFound
	}
	m.blogs[post.ID] = *post
	return nil
}

func (m *Memory) DeleteBlog(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blogs[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.blogs, id)
	return nil
}

func (m *Memory) GetProfile(_ context.Context, id string) (*core.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profile, ok := m.profiles[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &profile, nil
}

func (m *Memory) UpsertProfile(_ context.Context, profile *core.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profiles[profile.ID] = *profile
	return nil
}

func (m *Memory) CreateUser(_ context.Context, user *core.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users[user.Email] = *user
	return nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &user, nil
}

func (m *Memory) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for email, user := range m.users {
		if user.ID == id {
			user.PasswordHash = passwordHash
			m.users[email] = user
			return nil
		}
	}
	return core.ErrNotFound
}
