package tryon

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"fitted/internal/domain"
)

// DefaultTTL is how long an idle session stays alive.
const DefaultTTL = 30 * time.Minute

// Store holds sessions in memory with lazy TTL expiry. Expired entries are
// swept when a new session is created and filtered out on read, so no
// background goroutine is needed.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

type entry struct {
	session *domain.Session
	// refineMu serializes refinements of one session so concurrent chat
	// messages cannot interleave their read-describe-render-write cycles.
	refineMu sync.Mutex
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a new session and returns its id.
func (s *Store) Create(userPhotoRef, outfitRef string, description domain.OutfitDescription, resultRef string) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	sess := &domain.Session{
		ID:                 shortID(12),
		UserPhotoRef:       userPhotoRef,
		OriginalOutfitRef:  outfitRef,
		CurrentDescription: description,
		CurrentResultRef:   resultRef,
		CreatedAt:          s.now(),
	}
	s.sessions[sess.ID] = &entry{session: sess}
	return snapshot(sess)
}

// Lookup returns a copy of the session, or false if it is unknown or
// expired. Callers get a snapshot; mutations go through Mutate.
func (s *Store) Lookup(id string) (*domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok || s.expiredLocked(e.session) {
		return nil, false
	}
	return snapshot(e.session), true
}

// Mutate atomically replaces the session's description and result and
// appends the given chat turns. A failed generation must never call this;
// the session keeps its last good state.
func (s *Store) Mutate(id string, description domain.OutfitDescription, resultRef string, turns ...domain.ChatTurn) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok || s.expiredLocked(e.session) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	e.session.CurrentDescription = description
	e.session.CurrentResultRef = resultRef
	e.session.History = append(e.session.History, turns...)
	return snapshot(e.session), nil
}

// RefineLock hands out the per-session refinement mutex. The caller locks
// it around the whole refine cycle; the store's own mutex is never held
// across slow work.
func (s *Store) RefineLock(id string) (*sync.Mutex, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok || s.expiredLocked(e.session) {
		return nil, false
	}
	return &e.refineMu, true
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.sessions {
		if !s.expiredLocked(e.session) {
			n++
		}
	}
	return n
}

func (s *Store) sweepLocked() {
	for id, e := range s.sessions {
		if s.expiredLocked(e.session) {
			delete(s.sessions, id)
		}
	}
}

func (s *Store) expiredLocked(sess *domain.Session) bool {
	return s.now().Sub(sess.CreatedAt) > s.ttl
}

func snapshot(sess *domain.Session) *domain.Session {
	cp := *sess
	cp.History = append([]domain.ChatTurn(nil), sess.History...)
	return &cp
}

// shortID returns the first n hex characters of a random uuid.
func shortID(n int) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(hex) {
		n = len(hex)
	}
	return hex[:n]
}
