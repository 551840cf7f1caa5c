package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"podsum-backend/internal/models"
)

type memoryEntry struct {
	session   *models.Session
	expiresAt time.Time
}

// MemoryStore is a TTL- and capacity-bounded in-process session store.
// When the capacity cap is hit the oldest session is evicted. A reaper
// goroutine drops expired entries between requests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	capacity int
	stop     chan struct{}
	stopOnce sync.Once
}

func NewMemoryStore(ttl time.Duration, capacity int) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
		capacity: capacity,
		stop:     make(chan struct{}),
	}

	// Reaper goroutine. The interval is floored so a tiny (or zero) TTL
	// still yields a valid ticker.
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.reapExpired()
			case <-s.stop:
				return
			}
		}
	}()

	return s
}

func (s *MemoryStore) Create(_ context.Context, transcript, summary string, meta models.VideoMetadata) (*models.Session, error) {
	session := &models.Session{
		ID:                  uuid.New(),
		Transcript:          transcript,
		Summary:             summary,
		Metadata:            meta,
		ConversationHistory: []models.ChatMessage{},
		CreatedAt:           time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.capacity {
		s.evictOldestLocked()
	}
	s.sessions[session.ID.String()] = &memoryEntry{
		session:   session,
		expiresAt: time.Now().Add(s.ttl),
	}

	return copySession(session), nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[id]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrSessionNotFound
	}
	return copySession(entry.session), nil
}

func (s *MemoryStore) AppendTurn(_ context.Context, id string, userMsg, assistantMsg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || time.Now().After(entry.expiresAt) {
		return ErrSessionNotFound
	}

	entry.session.ConversationHistory = append(entry.session.ConversationHistory, userMsg, assistantMsg)
	// Touching a session keeps it alive.
	entry.expiresAt = time.Now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) reapExpired() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func (s *MemoryStore) evictOldestLocked() {
	var oldestID string
	var oldestAt time.Time
	for id, entry := range s.sessions {
		if oldestID == "" || entry.session.CreatedAt.Before(oldestAt) {
			oldestID = id
			oldestAt = entry.session.CreatedAt
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}

// copySession returns a deep-enough copy so callers never share the
// history slice with the store.
func copySession(session *models.Session) *models.Session {
	dup := *session
	dup.ConversationHistory = make([]models.ChatMessage, len(session.ConversationHistory))
	copy(dup.ConversationHistory, session.ConversationHistory)
	return &dup
}
