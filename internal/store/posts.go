package store

import (
	"sync"

	"marketer/internal/domain"
)

// PostStore holds scheduled social posts in memory. The records are
// inert; nothing consumes their scheduled time.
type PostStore struct {
	mu     sync.Mutex
	posts  []domain.ScheduledPost
	nextID int
}

func NewPostStore() *PostStore {
	return &PostStore{nextID: 1}
}

func (s *PostStore) Add(p domain.ScheduledPost) domain.ScheduledPost {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	s.nextID++
	s.posts = append(s.posts, p)
	return p
}

func (s *PostStore) List() []domain.ScheduledPost {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ScheduledPost, len(s.posts))
	copy(out, s.posts)
	return out
}
