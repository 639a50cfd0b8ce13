package config

import "time"

// Gameplay tunables. These are deliberately constants rather than
// environment knobs: every guild runs the same economy.
const (
	XPCooldown   = 60 * time.Second
	XPMin        = 10
	XPMax        = 25
	XPPerLevel   = 100
	LevelUpCoins = 50 // coins per level on level-up

	DailyCooldown = 24 * time.Hour
	DailyMin      = 500
	DailyMax      = 1000

	WorkCooldown = 15 * time.Minute
	WorkMin      = 100
	WorkMax      = 300

	FishCooldown = 2 * time.Minute

	GambleMinBet     = 10
	GambleMaxPercent = 0.5 // max bet as a share of wallet coins

	WarnThreshold   = 3
	WarnTimeout     = 60 * time.Minute
	PurgeMaxAmount  = 100
	TimeoutMaxMins  = 40320 // 28 days, the Discord ceiling
	ShopNameMax     = 100
	ShopDescMax     = 200
	ShopEmojiMax    = 10
	WarnReasonMax   = 500
	LeaderboardSize = 10

	VideoCheckInterval        = 5 * time.Minute
	LeaderboardUpdateInterval = time.Hour
)

// Fish is one entry of the fishing loot table. Weight is the relative draw
// probability; Value is the sale price credited on catch.
type Fish struct {
	Emoji  string
	Name   string
	Value  int
	Weight int
}

// FishTable is the weighted fishing loot table.
var FishTable = []Fish{
	{"🐟", "Common Fish", 50, 50},
	{"🐠", "Tropical Fish", 100, 30},
	{"🦈", "Shark", 300, 10},
	{"🐙", "Octopus", 200, 15},
	{"🦀", "Crab", 75, 25},
	{"🐢", "Turtle", 150, 20},
	{"🦞", "Lobster", 180, 18},
	{"🐡", "Pufferfish", 220, 12},
	{"🦑", "Squid", 140, 22},
	{"🐋", "Whale", 500, 5},
	{"🐬", "Dolphin", 350, 8},
	{"🦭", "Seal", 280, 9},
	{"🐚", "Pearl", 400, 6},
	{"⚓", "Old Anchor", 250, 8},
	{"💎", "Diamond", 1000, 2},
	{"🏆", "Golden Trophy", 1500, 1},
	{"👢", "Old Boot", 10, 40},
	{"🥫", "Tin Can", 5, 35},
}

// Slot machine reels and payouts (multiplier by match count).
var (
	SlotSymbols = []string{"🍒", "🍋", "🍊", "🍇", "💎", "7️⃣"}
	SlotPayouts = map[int]float64{3: 5.0, 2: 2.0}
)

// Dice roll: win rate and payout multiplier range.
const (
	DiceWinRate       = 0.48
	DiceMultiplierMin = 1.5
	DiceMultiplierMax = 2.8
)

// Coin flip: win rate and fixed payout multiplier.
const (
	CoinflipWinRate    = 0.49
	CoinflipMultiplier = 2.0
)

// Roulette: red/black pay 2x, green pays 14x.
const (
	RouletteColorPayout = 2.0
	RouletteGreenPayout = 14.0
	RouletteGreenOdds   = 1.0 / 15.0
)
