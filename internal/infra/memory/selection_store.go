package memory

import (
	"sync"

	"duty_roster_bot/internal/domain/duty"
	"duty_roster_bot/internal/domain/roster"
)

// SelectionStore is an in-memory duty.SelectionRepository. State lives for
// the process lifetime only; there is no persistence by design.
type SelectionStore struct {
	mu     sync.RWMutex
	byUser map[duty.UserID]roster.Participant
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{byUser: make(map[duty.UserID]roster.Participant)}
}

// Select records the participant the user follows, overwriting any earlier
// choice.
func (s *SelectionStore) Select(user duty.UserID, p roster.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[user] = p
}

// Get returns the user's selected participant, if any.
func (s *SelectionStore) Get(user duty.UserID) (roster.Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byUser[user]
	return p, ok
}

// ListByParticipant returns all users following the given participant.
// Map iteration makes the order unspecified, which callers must not rely on.
func (s *SelectionStore) ListByParticipant(p roster.Participant) []duty.UserID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []duty.UserID
	for user, selected := range s.byUser {
		if selected == p {
			out = append(out, user)
		}
	}
	return out
}
