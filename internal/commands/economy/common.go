// Package economy holds the coin commands: claims, bank moves, transfers,
// fishing and the casino.
package economy

import (
	"fmt"
	"time"
)

// formatRemaining renders a cooldown for humans, coarsest unit first.
func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
