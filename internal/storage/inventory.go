package storage

import "time"

// Inventory returns a copy of the member's inventory, keyed by item id.
func (s *Store) Inventory(guildID, userID string) map[string]InventoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]InventoryEntry, len(s.doc.Inventory[guildID][userID]))
	for id, entry := range s.doc.Inventory[guildID][userID] {
		out[id] = entry
	}
	return out
}

// AddToInventory records a purchase. Adding an already-owned item increments
// its quantity. Ownership rules live in PurchaseItem; this is the raw write.
func (s *Store) AddToInventory(guildID, userID, itemID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addToInventoryLocked(guildID, userID, itemID, now)
	return s.save()
}

func (s *Store) addToInventoryLocked(guildID, userID, itemID string, now time.Time) {
	users, ok := s.doc.Inventory[guildID]
	if !ok {
		users = map[string]map[string]InventoryEntry{}
		s.doc.Inventory[guildID] = users
	}
	items, ok := users[userID]
	if !ok {
		items = map[string]InventoryEntry{}
		users[userID] = items
	}

	if entry, ok := items[itemID]; ok {
		entry.Quantity++
		items[itemID] = entry
	} else {
		items[itemID] = InventoryEntry{PurchasedAt: now.Unix(), Quantity: 1}
	}
}
