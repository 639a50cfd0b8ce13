// Package storage is the record store: typed, guild-partitioned tables over
// a single durable JSON document. Reads return independent copies and never
// persist; every mutation updates memory first and then synchronously saves
// through the persistence engine. If the save fails, memory remains the
// source of truth for the running process and the error is surfaced to the
// caller.
package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"toolybot/datastore"
)

// ErrNotFound is returned when an explicitly addressed entry (shop item,
// leaderboard pointer) does not exist. Absent per-user records are not
// errors; they materialize as defaults.
var ErrNotFound = errors.New("storage: not found")

// document is the durable JSON layout. Category first, then guild, then user
// or item key.
type document struct {
	Levels        map[string]map[string]LevelRecord               `json:"levels"`
	Economy       map[string]map[string]EconomyRecord             `json:"economy"`
	Warnings      map[string]map[string][]Warning                 `json:"warnings"`
	Inventory     map[string]map[string]map[string]InventoryEntry `json:"inventory"`
	ShopItems     map[string]map[string]ShopItem                  `json:"shop_items"`
	Leaderboards  map[string]LeaderboardPointer                   `json:"leaderboard_messages"`
	LastVideoID   map[string]string                               `json:"lastVideoId"`
	ReactionRoles map[string]map[string]map[string]string         `json:"reaction_roles"`
	Settings      map[string]map[string]any                       `json:"settings"`
}

func emptyDocument() document {
	return document{
		Levels:        map[string]map[string]LevelRecord{},
		Economy:       map[string]map[string]EconomyRecord{},
		Warnings:      map[string]map[string][]Warning{},
		Inventory:     map[string]map[string]map[string]InventoryEntry{},
		ShopItems:     map[string]map[string]ShopItem{},
		Leaderboards:  map[string]LeaderboardPointer{},
		LastVideoID:   map[string]string{},
		ReactionRoles: map[string]map[string]map[string]string{},
		Settings:      map[string]map[string]any{},
	}
}

// Store owns all records. Constructed once at startup, torn down with Close.
type Store struct {
	mu     sync.RWMutex
	doc    document
	engine *datastore.Engine
	log    zerolog.Logger
}

// New opens the store at path. Corrupt durable data is logged and replaced
// by an empty store; startup never fails on bad data.
func New(path string, backups int, log zerolog.Logger) (*Store, error) {
	engine, err := datastore.New(datastore.Config{
		FilePath:    path,
		BackupCount: backups,
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}

	s := &Store{doc: emptyDocument(), engine: engine, log: log}
	if err := s.engine.Load(&s.doc); err != nil {
		if errors.Is(err, datastore.ErrCorrupt) {
			log.Error().Err(err).Msg("data file corrupt, starting with empty store")
			s.doc = emptyDocument()
		} else {
			return nil, err
		}
	}
	s.normalize()
	return s, nil
}

// Close flushes the current snapshot.
func (s *Store) Close() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Save(&s.doc)
}

// normalize makes every category map non-nil after a load, so absent
// categories behave as empty rather than panicking.
func (s *Store) normalize() {
	if s.doc.Levels == nil {
		s.doc.Levels = map[string]map[string]LevelRecord{}
	}
	if s.doc.Economy == nil {
		s.doc.Economy = map[string]map[string]EconomyRecord{}
	}
	if s.doc.Warnings == nil {
		s.doc.Warnings = map[string]map[string][]Warning{}
	}
	if s.doc.Inventory == nil {
		s.doc.Inventory = map[string]map[string]map[string]InventoryEntry{}
	}
	if s.doc.ShopItems == nil {
		s.doc.ShopItems = map[string]map[string]ShopItem{}
	}
	if s.doc.Leaderboards == nil {
		s.doc.Leaderboards = map[string]LeaderboardPointer{}
	}
	if s.doc.LastVideoID == nil {
		s.doc.LastVideoID = map[string]string{}
	}
	if s.doc.ReactionRoles == nil {
		s.doc.ReactionRoles = map[string]map[string]map[string]string{}
	}
	if s.doc.Settings == nil {
		s.doc.Settings = map[string]map[string]any{}
	}
}

// save persists the current snapshot. Callers hold the write lock.
func (s *Store) save() error {
	if err := s.engine.Save(&s.doc); err != nil {
		s.log.Error().Err(err).Msg("failed to save data file")
		return fmt.Errorf("storage: save: %w", err)
	}
	return nil
}

// GuildIDs returns every guild id that appears in any category.
func (s *Store) GuildIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]struct{}{}
	for g := range s.doc.Levels {
		seen[g] = struct{}{}
	}
	for g := range s.doc.Economy {
		seen[g] = struct{}{}
	}
	for g := range s.doc.Warnings {
		seen[g] = struct{}{}
	}
	for g := range s.doc.ShopItems {
		seen[g] = struct{}{}
	}
	for g := range s.doc.Leaderboards {
		seen[g] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for g := range seen {
		ids = append(ids, g)
	}
	return ids
}

// Stats is a coarse summary for the dashboard.
type Stats struct {
	Guilds       int `json:"guilds"`
	TrackedUsers int `json:"tracked_users"`
	TotalCoins   int `json:"total_coins"`
	ShopItems    int `json:"shop_items"`
}

// Totals aggregates store-wide counts.
func (s *Store) Totals() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	guilds := map[string]struct{}{}
	for g, users := range s.doc.Levels {
		guilds[g] = struct{}{}
		st.TrackedUsers += len(users)
	}
	for g, users := range s.doc.Economy {
		guilds[g] = struct{}{}
		for _, rec := range users {
			st.TotalCoins += rec.Coins + rec.Bank
		}
	}
	for g, items := range s.doc.ShopItems {
		guilds[g] = struct{}{}
		st.ShopItems += len(items)
	}
	st.Guilds = len(guilds)
	return st
}
