// Package session keeps parsed datasets alive in memory under opaque
// handles for a bounded time. Nothing here survives a restart; expiry
// is a terminal state requiring re-upload.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tabviz/tabviz/internal/domain"
	"go.uber.org/zap"
)

// Session binds one ingested dataset and its profile to a handle.
type Session struct {
	ID        string
	Dataset   *domain.Dataset
	Profile   *domain.Profile
	CreatedAt time.Time
}

// Store is a concurrency-safe in-memory session cache with a fixed
// TTL. Expired entries are evicted lazily on Get and by the periodic
// sweeper.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Session

	ttl    time.Duration
	logger *zap.Logger

	// now is swappable for expiry tests.
	now func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// NewStore creates a session store with the given TTL.
func NewStore(ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		entries: make(map[string]*Session),
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

// Put stores a dataset and its profile under a fresh handle.
func (s *Store) Put(ds *domain.Dataset, profile *domain.Profile) string {
	sess := &Session{
		ID:        uuid.New().String(),
		Dataset:   ds,
		Profile:   profile,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.entries[sess.ID] = sess
	s.mu.Unlock()

	return sess.ID
}

// Get returns the session for a handle. Unknown handles and entries
// older than the TTL fail with domain.ErrSessionNotFound; expired
// entries are evicted on detection.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.expired(sess) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Sweep evicts every expired entry and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.entries {
		if s.expired(sess) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live entries, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// StartSweeper launches the background eviction loop. It runs until
// Stop is called.
func (s *Store) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					s.logger.Info("evicted expired sessions", zap.Int("count", n))
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the background sweeper.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) expired(sess *Session) bool {
	return s.now().Sub(sess.CreatedAt) >= s.ttl
}
