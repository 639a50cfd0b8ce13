package storage

// Setting returns a raw per-guild setting value.
func (s *Store) Setting(guildID, key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.doc.Settings[guildID][key]
	return v, ok
}

// SetSetting stores a per-guild setting value and persists.
func (s *Store) SetSetting(guildID, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, ok := s.doc.Settings[guildID]
	if !ok {
		settings = map[string]any{}
		s.doc.Settings[guildID] = settings
	}
	settings[key] = value
	return s.save()
}

// GuildSettings returns a copy of all settings for the guild.
func (s *Store) GuildSettings(guildID string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, len(s.doc.Settings[guildID]))
	for k, v := range s.doc.Settings[guildID] {
		out[k] = v
	}
	return out
}

const settingNotifications = "notifications_enabled"

// NotificationsEnabled reports whether upload notifications are on for the
// guild. Defaults to enabled when never set.
func (s *Store) NotificationsEnabled(guildID string) bool {
	v, ok := s.Setting(guildID, settingNotifications)
	if !ok {
		return true
	}
	enabled, ok := v.(bool)
	if !ok {
		return true
	}
	return enabled
}

// SetNotificationsEnabled toggles upload notifications for the guild.
func (s *Store) SetNotificationsEnabled(guildID string, enabled bool) error {
	return s.SetSetting(guildID, settingNotifications, enabled)
}
