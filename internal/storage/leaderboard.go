package storage

// Leaderboard returns the guild's leaderboard pointer, if one was posted.
func (s *Store) Leaderboard(guildID string) (LeaderboardPointer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ptr, ok := s.doc.Leaderboards[guildID]
	return ptr, ok
}

// SetLeaderboard records where the guild's auto-updating leaderboard lives.
func (s *Store) SetLeaderboard(guildID string, ptr LeaderboardPointer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Leaderboards[guildID] = ptr
	return s.save()
}

// ClearLeaderboard drops a stale pointer. Clearing an absent pointer is a
// no-op, not an error.
func (s *Store) ClearLeaderboard(guildID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc.Leaderboards[guildID]; !ok {
		return nil
	}
	delete(s.doc.Leaderboards, guildID)
	return s.save()
}

// Leaderboards returns a copy of every guild's pointer, for the refresh loop.
func (s *Store) Leaderboards() map[string]LeaderboardPointer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]LeaderboardPointer, len(s.doc.Leaderboards))
	for g, ptr := range s.doc.Leaderboards {
		out[g] = ptr
	}
	return out
}
