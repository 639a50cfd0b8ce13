// Package rank turns raw level and economy records into ordered standings.
package rank

import (
	"fmt"
	"sort"
	"strings"

	"toolybot/internal/storage"
)

// Entry is one row of a guild's standings.
type Entry struct {
	UserID     string
	Level      int
	XP         int
	TotalCoins int
}

// Source is the slice of the record store the ranker needs.
type Source interface {
	GuildLevels(guildID string) map[string]storage.LevelRecord
	Economy(guildID, userID string) storage.EconomyRecord
}

// Standings returns every tracked user in the guild ordered by level
// descending, then XP descending. Users tied on both keep a stable order by
// user id, so repeated renders of the same data are identical.
func Standings(src Source, guildID string) []Entry {
	levels := src.GuildLevels(guildID)

	ids := make([]string, 0, len(levels))
	for id := range levels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		rec := levels[id]
		eco := src.Economy(guildID, id)
		entries = append(entries, Entry{
			UserID:     id,
			Level:      rec.Level,
			XP:         rec.XP,
			TotalCoins: eco.Coins + eco.Bank,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Level != entries[j].Level {
			return entries[i].Level > entries[j].Level
		}
		return entries[i].XP > entries[j].XP
	})
	return entries
}

// TopN returns at most n leading entries.
func TopN(src Source, guildID string, n int) []Entry {
	entries := Standings(src, guildID)
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// PositionOf returns the 1-based position of the user, or 0 when the user has
// no record in the guild.
func PositionOf(src Source, guildID, userID string) int {
	for i, e := range Standings(src, guildID) {
		if e.UserID == userID {
			return i + 1
		}
	}
	return 0
}

var medals = []string{"🥇", "🥈", "🥉"}

// Render formats standings as leaderboard lines. Positions beyond the medals
// fall back to a plain number.
func Render(entries []Entry) string {
	if len(entries) == 0 {
		return "No one has earned XP yet."
	}

	var b strings.Builder
	for i, e := range entries {
		marker := fmt.Sprintf("`#%d`", i+1)
		if i < len(medals) {
			marker = medals[i]
		}
		fmt.Fprintf(&b, "%s <@%s> — Level %d (%d XP, %d coins)\n",
			marker, e.UserID, e.Level, e.XP, e.TotalCoins)
	}
	return strings.TrimRight(b.String(), "\n")
}
