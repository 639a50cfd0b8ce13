package storage

// ReactionRole resolves the role bound to (message, emoji), if any.
func (s *Store) ReactionRole(guildID, messageID, emoji string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roleID, ok := s.doc.ReactionRoles[guildID][messageID][emoji]
	return roleID, ok
}

// SetReactionRole binds an emoji on a message to a role.
func (s *Store) SetReactionRole(guildID, messageID, emoji, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, ok := s.doc.ReactionRoles[guildID]
	if !ok {
		msgs = map[string]map[string]string{}
		s.doc.ReactionRoles[guildID] = msgs
	}
	emojis, ok := msgs[messageID]
	if !ok {
		emojis = map[string]string{}
		msgs[messageID] = emojis
	}
	emojis[emoji] = roleID
	return s.save()
}

// RemoveReactionRole unbinds one emoji, or the whole message when emoji is
// empty. Removing an absent binding is a no-op.
func (s *Store) RemoveReactionRole(guildID, messageID, emoji string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, ok := s.doc.ReactionRoles[guildID]
	if !ok {
		return nil
	}
	if emoji == "" {
		if _, ok := msgs[messageID]; !ok {
			return nil
		}
		delete(msgs, messageID)
		return s.save()
	}
	emojis, ok := msgs[messageID]
	if !ok {
		return nil
	}
	if _, ok := emojis[emoji]; !ok {
		return nil
	}
	delete(emojis, emoji)
	return s.save()
}

// GuildReactionRoles returns a copy of every binding in the guild,
// message id -> emoji -> role id.
func (s *Store) GuildReactionRoles(guildID string) map[string]map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]map[string]string, len(s.doc.ReactionRoles[guildID]))
	for msgID, emojis := range s.doc.ReactionRoles[guildID] {
		m := make(map[string]string, len(emojis))
		for e, r := range emojis {
			m[e] = r
		}
		out[msgID] = m
	}
	return out
}
