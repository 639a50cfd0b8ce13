package storage

import (
	"time"

	"github.com/google/uuid"
)

// Warnings returns a copy of the member's warning list, oldest first.
func (s *Store) Warnings(guildID, userID string) []Warning {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.doc.Warnings[guildID][userID]
	out := make([]Warning, len(list))
	copy(out, list)
	return out
}

// AddWarning appends a warning and persists. Returns the stored entry and
// the member's new warning count.
func (s *Store) AddWarning(guildID, userID, reason, moderatorID string, now time.Time) (Warning, int, error) {
	w := Warning{
		ID:          uuid.NewString(),
		Reason:      reason,
		ModeratorID: moderatorID,
		Timestamp:   now.Unix(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, ok := s.doc.Warnings[guildID]
	if !ok {
		users = map[string][]Warning{}
		s.doc.Warnings[guildID] = users
	}
	users[userID] = append(users[userID], w)
	return w, len(users[userID]), s.save()
}

// ClearWarnings removes all of a member's warnings. Clearing an absent list
// is a no-op, not an error.
func (s *Store) ClearWarnings(guildID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, ok := s.doc.Warnings[guildID]
	if !ok {
		return nil
	}
	if _, ok := users[userID]; !ok {
		return nil
	}
	delete(users, userID)
	return s.save()
}
