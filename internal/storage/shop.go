package storage

import (
	"errors"
	"time"
	"unicode/utf8"

	"toolybot/internal/config"
)

var (
	// ErrDuplicateItem rejects creating an item whose id already exists.
	ErrDuplicateItem = errors.New("storage: item id already exists")
	// ErrInvalidItem rejects malformed items before any mutation.
	ErrInvalidItem = errors.New("storage: invalid item")
	// ErrAlreadyOwned rejects re-buying a non-consumable the member owns.
	ErrAlreadyOwned = errors.New("storage: item already owned")
)

// Item types. Roles and badges are one-per-member; consumables stack.
const (
	ItemTypeRole       = "role"
	ItemTypeBadge      = "badge"
	ItemTypeConsumable = "consumable"
)

// ShopItems returns a copy of the guild's shop, keyed by item id.
func (s *Store) ShopItems(guildID string) map[string]ShopItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]ShopItem, len(s.doc.ShopItems[guildID]))
	for id, item := range s.doc.ShopItems[guildID] {
		out[id] = item
	}
	return out
}

// ShopItem looks up one item by id.
func (s *Store) ShopItem(guildID, itemID string) (ShopItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.doc.ShopItems[guildID][itemID]
	if !ok {
		return ShopItem{}, ErrNotFound
	}
	return item, nil
}

// CreateShopItem validates and stores a new item. Role items require a role
// id; prices must be positive; duplicate ids are rejected. Emoji length is
// counted in runes, so multi-byte emoji sequences are not penalized.
func (s *Store) CreateShopItem(guildID, itemID string, item ShopItem) error {
	if itemID == "" || item.Name == "" || item.Price <= 0 {
		return ErrInvalidItem
	}
	switch item.Type {
	case ItemTypeRole, ItemTypeBadge, ItemTypeConsumable:
	default:
		return ErrInvalidItem
	}
	if item.Type == ItemTypeRole && item.RoleID == "" {
		return ErrInvalidItem
	}
	if utf8.RuneCountInString(item.Emoji) > config.ShopEmojiMax {
		return ErrInvalidItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.doc.ShopItems[guildID]
	if !ok {
		items = map[string]ShopItem{}
		s.doc.ShopItems[guildID] = items
	}
	if _, exists := items[itemID]; exists {
		return ErrDuplicateItem
	}
	items[itemID] = item
	return s.save()
}

// DeleteShopItem removes an item. Returns ErrNotFound if it does not exist.
func (s *Store) DeleteShopItem(guildID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.doc.ShopItems[guildID]
	if _, ok := items[itemID]; !ok {
		return ErrNotFound
	}
	delete(items, itemID)
	return s.save()
}

// PurchaseItem debits the buyer's wallet and records the item in one step.
// Roles and badges can only be owned once; consumables stack. Rejections
// leave wallet and inventory untouched.
func (s *Store) PurchaseItem(guildID, userID, itemID string, now time.Time) (ShopItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.doc.ShopItems[guildID][itemID]
	if !ok {
		return ShopItem{}, ErrNotFound
	}

	owned := false
	if entry, ok := s.doc.Inventory[guildID][userID][itemID]; ok && entry.Quantity > 0 {
		owned = true
	}
	if owned && item.Type != ItemTypeConsumable {
		return item, ErrAlreadyOwned
	}

	rec := s.economyLocked(guildID, userID)
	if rec.Coins < item.Price {
		return item, ErrInsufficientCoins
	}
	rec.Coins -= item.Price
	s.setEconomyLocked(guildID, userID, rec)
	s.addToInventoryLocked(guildID, userID, itemID, now)
	return item, s.save()
}
