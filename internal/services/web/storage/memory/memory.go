// Package memory provides a process-local draft store.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/educonsult/site/internal/lead"
	webstorage "github.com/educonsult/site/internal/services/web/storage"
)

type entry struct {
	draft     lead.Draft
	expiresAt time.Time
}

// Store keeps drafts in memory. Drafts are lost on restart.
type Store struct {
	mu      sync.Mutex
	drafts  map[string]entry
	now     func() time.Time
	lastGC  time.Time
	gcEvery time.Duration
}

// New returns an empty store.
func New() *Store {
	return &Store{
		drafts:  map[string]entry{},
		now:     time.Now,
		gcEvery: time.Minute,
	}
}

// GetDraft returns a live draft.
func (s *Store) GetDraft(_ context.Context, id string) (lead.Draft, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return lead.Draft{}, false, fmt.Errorf("draft id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.drafts[id]
	if !ok {
		return lead.Draft{}, false, nil
	}
	if s.expired(e) {
		delete(s.drafts, id)
		return lead.Draft{}, false, nil
	}
	return e.draft, true, nil
}

// PutDraft stores draft for ttl.
func (s *Store) PutDraft(_ context.Context, draft lead.Draft, ttl time.Duration) error {
	draft.ID = strings.TrimSpace(draft.ID)
	if draft.ID == "" {
		return fmt.Errorf("draft id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e := entry{draft: draft}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	s.drafts[draft.ID] = e
	if now.Sub(s.lastGC) >= s.gcEvery {
		s.collect()
		s.lastGC = now
	}
	return nil
}

// DeleteDraft removes a draft.
func (s *Store) DeleteDraft(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, strings.TrimSpace(id))
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// Len reports the number of stored drafts, expired ones included until
// they are collected.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

func (s *Store) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

func (s *Store) collect() {
	for id, e := range s.drafts {
		if s.expired(e) {
			delete(s.drafts, id)
		}
	}
}

var _ webstorage.DraftStore = (*Store)(nil)
