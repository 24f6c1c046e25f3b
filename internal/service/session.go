package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pokedex/explorer/internal/state"

	log "github.com/sirupsen/logrus"
)

// ErrStaleResult is returned to a search superseded by a newer one.
var ErrStaleResult = errors.New("search result superseded by a newer search")

// Session holds the result currently on display. Each search takes a token
// from the sequencer; a search that resolves after a newer one was issued is
// discarded instead of overwriting the newer result.
type Session struct {
	id        string
	explorer  *Explorer
	sequencer state.Sequencer

	mu      sync.RWMutex
	current *SearchResult
}

func NewSession(id string, explorer *Explorer, sequencer state.Sequencer) *Session {
	return &Session{
		id:        id,
		explorer:  explorer,
		sequencer: sequencer,
	}
}

func (s *Session) Search(ctx context.Context, term string) (*SearchResult, error) {
	token, err := s.sequencer.Next(ctx, s.id)
	if err != nil {
		return nil, fmt.Errorf("failed to start search: %w", err)
	}

	result, searchErr := s.explorer.Search(ctx, term)

	s.mu.Lock()
	defer s.mu.Unlock()

	latest, err := s.sequencer.Current(ctx, s.id)
	if err != nil {
		return nil, fmt.Errorf("failed to check search token: %w", err)
	}
	if latest != token {
		log.Debugf("Discarding search %q for session %s: token %d superseded by %d", term, s.id, token, latest)
		return nil, ErrStaleResult
	}

	if searchErr != nil {
		s.current = nil
		return nil, searchErr
	}

	s.current = result
	return result, nil
}

// Current returns the result on display, or nil.
func (s *Session) Current() *SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Clear drops the displayed result and invalidates searches still in flight.
func (s *Session) Clear(ctx context.Context) error {
	if _, err := s.sequencer.Next(ctx, s.id); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}
