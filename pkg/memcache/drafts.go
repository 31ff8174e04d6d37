// pkg/memcache/drafts.go
package mem

import (
	"sync"
	"time"

	"tripcraft/internal/models/trip_models"
)

type DraftStore interface {
	Set(id string, prefs trip_models.TripPreferences, ttl time.Duration)

	// Get returns the draft for id if it has not expired.
	Get(id string) (trip_models.TripPreferences, bool)

	// Replace swaps the stored preferences and restarts the ttl. Returns false if id is missing/expired.
	Replace(id string, prefs trip_models.TripPreferences, ttl time.Duration) bool

	Delete(id string) bool

	// Sweep drops expired drafts and returns how many were removed.
	Sweep() int
}

type entry struct {
	prefs     trip_models.TripPreferences
	expiresAt time.Time
}

type Drafts struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewDrafts() *Drafts {
	return NewDraftsWithClock(time.Now)
}

func NewDraftsWithClock(now func() time.Time) *Drafts {
	return &Drafts{
		data: make(map[string]entry),
		now:  now,
	}
}

func (s *Drafts) Set(id string, prefs trip_models.TripPreferences, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = entry{
		prefs:     clonePrefs(prefs),
		expiresAt: s.now().Add(ttl),
	}
}

func (s *Drafts) Get(id string) (trip_models.TripPreferences, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok || !s.now().Before(e.expiresAt) {
		return trip_models.TripPreferences{}, false
	}
	return clonePrefs(e.prefs), true
}

func (s *Drafts) Replace(id string, prefs trip_models.TripPreferences, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return false
	}
	now := s.now()
	if !now.Before(e.expiresAt) {
		delete(s.data, id) // cleanup expired
		return false
	}
	s.data[id] = entry{prefs: clonePrefs(prefs), expiresAt: now.Add(ttl)}
	return true
}

func (s *Drafts) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return false
	}
	delete(s.data, id)
	return s.now().Before(e.expiresAt)
}

func (s *Drafts) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.data {
		if !now.Before(e.expiresAt) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

func (s *Drafts) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// clonePrefs keeps callers from mutating stored interests through a shared backing array.
func clonePrefs(p trip_models.TripPreferences) trip_models.TripPreferences {
	p.Interests = append([]trip_models.Interest(nil), p.Interests...)
	return p
}
