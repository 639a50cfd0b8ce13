package rewards

import (
	"time"

	"toolybot/internal/config"
	"toolybot/internal/storage"
)

// XPResult describes what a message earned.
type XPResult struct {
	Awarded   int
	LeveledUp bool
	NewLevel  int
	CoinBonus int
}

// XPThreshold is the XP needed to advance past the given level.
func XPThreshold(level int) int {
	return level * config.XPPerLevel
}

// ApplyXP grants message XP to a level record. It returns the updated record
// and false when the user is still inside the XP cooldown, in which case the
// record is returned unchanged.
//
// Crossing the threshold advances exactly one level and resets XP to zero;
// surplus XP is not carried over. The coin bonus scales with the level
// reached.
func ApplyXP(rec storage.LevelRecord, now time.Time, r Roller) (storage.LevelRecord, XPResult, bool) {
	if CooldownRemaining(rec.LastMessageAt, now, config.XPCooldown) > 0 {
		return rec, XPResult{}, false
	}

	res := XPResult{Awarded: r.between(config.XPMin, config.XPMax)}
	rec.XP += res.Awarded
	rec.LastMessageAt = now.Unix()

	if rec.XP >= XPThreshold(rec.Level) {
		rec.Level++
		rec.XP = 0
		res.LeveledUp = true
		res.NewLevel = rec.Level
		res.CoinBonus = rec.Level * config.LevelUpCoins
	}
	return rec, res, true
}
