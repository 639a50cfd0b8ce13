package rewards

import "toolybot/internal/config"

// CatchFish draws one entry from the weighted loot table.
func CatchFish(r Roller) config.Fish {
	total := 0
	for _, f := range config.FishTable {
		total += f.Weight
	}

	pick := r.Intn(total)
	for _, f := range config.FishTable {
		pick -= f.Weight
		if pick < 0 {
			return f
		}
	}
	// Unreachable while the table has positive weights.
	return config.FishTable[len(config.FishTable)-1]
}
