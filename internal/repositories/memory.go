package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/desertthunder/tokengen/internal/models"
)

// MemorySessionStore keeps sessions in a map guarded by a read/write lock.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	idle     time.Duration
	now      models.Clock
}

// NewMemorySessionStore creates a store whose sessions expire after idle without a save.
func NewMemorySessionStore(idle time.Duration, now models.Clock) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*models.Session),
		idle:     idle,
		now:      clockOrNow(now),
	}
}

func (r *MemorySessionStore) Get(_ context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok || session.Expired(r.now(), r.idle) {
		return nil, notFound(id)
	}
	return session.Clone(), nil
}

func (r *MemorySessionStore) Save(_ context.Context, session *models.Session) error {
	if err := checkSave(session, r.now()); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session.Clone()
	return nil
}

func (r *MemorySessionStore) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *MemorySessionStore) Prune(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	pruned := 0
	for id, session := range r.sessions {
		if session.Expired(now, r.idle) {
			delete(r.sessions, id)
			pruned++
		}
	}
	return pruned, nil
}

// Len returns the number of stored sessions, expired ones included.
func (r *MemorySessionStore) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
