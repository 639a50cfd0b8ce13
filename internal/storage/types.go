package storage

// Timestamps throughout are Unix seconds; zero means "never". Field names
// match the durable JSON document, which predates this codebase.

// LevelRecord tracks a member's chat progression within one guild.
type LevelRecord struct {
	Level         int   `json:"level"`
	XP            int   `json:"xp"`
	LastMessageAt int64 `json:"lastMessage"`
}

// defaultLevel is what a never-written member looks like.
func defaultLevel() LevelRecord {
	return LevelRecord{Level: 1}
}

// EconomyRecord tracks a member's wallet, bank and activity stats within one
// guild. Coins and Bank never go negative; mutations that would are rejected
// before any state changes.
type EconomyRecord struct {
	Coins          int   `json:"coins"`
	Bank           int   `json:"bank"`
	LastDailyAt    int64 `json:"lastDaily"`
	LastWorkAt     int64 `json:"lastWork"`
	LastFishAt     int64 `json:"lastFish"`
	FishCaught     int   `json:"fishCaught"`
	TotalGambled   int   `json:"totalGambled"`
	GamblingWins   int   `json:"gamblingWins"`
	GamblingLosses int   `json:"gamblingLosses"`
}

// Warning is one append-only moderation entry. Entries are never edited in
// place; a user's list only grows or is cleared wholesale.
type Warning struct {
	ID          string `json:"id"`
	Reason      string `json:"reason"`
	ModeratorID string `json:"mod"`
	Timestamp   int64  `json:"timestamp"`
}

// InventoryEntry records ownership of one shop item.
type InventoryEntry struct {
	PurchasedAt int64 `json:"purchased"`
	Quantity    int   `json:"quantity"`
}

// ShopItem is a purchasable item. The item id is the map key in the store.
type ShopItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Emoji       string `json:"emoji"`
	Type        string `json:"type"` // ItemTypeRole, ItemTypeBadge or ItemTypeConsumable
	RoleID      string `json:"role_id,omitempty"`
	CreatedAt   int64  `json:"created"`
	CreatorID   string `json:"creator"`
}

// LeaderboardPointer identifies a previously posted leaderboard message that
// the refresh loop edits in place.
type LeaderboardPointer struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}
