package storage

// Level returns the member's level record, or the default for a member that
// has never been written. The default is not persisted by the read.
func (s *Store) Level(guildID, userID string) LevelRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if users, ok := s.doc.Levels[guildID]; ok {
		if rec, ok := users[userID]; ok {
			return rec
		}
	}
	return defaultLevel()
}

// SetLevel replaces the member's level record and persists.
func (s *Store) SetLevel(guildID, userID string, rec LevelRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, ok := s.doc.Levels[guildID]
	if !ok {
		users = map[string]LevelRecord{}
		s.doc.Levels[guildID] = users
	}
	users[userID] = rec
	return s.save()
}

// GuildLevels returns a copy of every level record in the guild.
func (s *Store) GuildLevels(guildID string) map[string]LevelRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]LevelRecord, len(s.doc.Levels[guildID]))
	for userID, rec := range s.doc.Levels[guildID] {
		out[userID] = rec
	}
	return out
}
