package inmemory

import (
	"sync"
	"time"

	workoutdomain "fittrack-go/internal/domain/workout"
)

const defaultDraftTTL = 24 * time.Hour

// DraftStore keeps unsaved workouts in process memory. A draft expires when it
// has not been touched for ttl.
type DraftStore struct {
	mu    sync.RWMutex
	items map[string]draftItem
	ttl   time.Duration
	now   func() time.Time
}

type draftItem struct {
	value     workoutdomain.Session
	expiresAt time.Time
}

func NewDraftStore(ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = defaultDraftTTL
	}
	return &DraftStore{
		items: make(map[string]draftItem),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *DraftStore) Get(userID string) (workoutdomain.Session, bool) {
	now := s.now()

	s.mu.RLock()
	item, ok := s.items[userID]
	s.mu.RUnlock()
	if !ok {
		return workoutdomain.Session{}, false
	}

	if !item.expiresAt.After(now) {
		s.mu.Lock()
		item, ok = s.items[userID]
		if ok && !item.expiresAt.After(now) {
			delete(s.items, userID)
		}
		s.mu.Unlock()
		return workoutdomain.Session{}, false
	}

	return item.value.Clone(), true
}

func (s *DraftStore) Put(userID string, session workoutdomain.Session) {
	s.mu.Lock()
	s.items[userID] = draftItem{
		value:     session.Clone(),
		expiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()
}

func (s *DraftStore) Delete(userID string) {
	s.mu.Lock()
	delete(s.items, userID)
	s.mu.Unlock()
}

// PurgeExpired removes expired drafts and reports how many were dropped.
func (s *DraftStore) PurgeExpired() int {
	now := s.now()
	removed := 0

	s.mu.Lock()
	for userID, item := range s.items {
		if !item.expiresAt.After(now) {
			delete(s.items, userID)
			removed++
		}
	}
	s.mu.Unlock()

	return removed
}
