package storage

// LastVideoID returns the most recently announced upload for the guild, or
// "" if nothing has been announced yet.
func (s *Store) LastVideoID(guildID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.LastVideoID[guildID]
}

// SetLastVideoID advances the guild's feed cursor.
func (s *Store) SetLastVideoID(guildID, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.LastVideoID[guildID] = videoID
	return s.save()
}
