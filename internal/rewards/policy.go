// Package rewards holds the reward and cooldown policy: XP gain, timed
// claims, fishing draws and gambling games. Everything here is pure; callers
// own the record store mutations.
package rewards

import (
	"math/rand"
	"time"

	"toolybot/internal/config"
)

// Roller is the randomness the policy draws on. Injected so tests can pin
// outcomes.
type Roller struct {
	Intn    func(n int) int
	Float64 func() float64
}

// NewRoller returns a Roller backed by math/rand.
func NewRoller() Roller {
	return Roller{Intn: rand.Intn, Float64: rand.Float64}
}

func (r Roller) between(min, max int) int {
	return min + r.Intn(max-min+1)
}

// CooldownRemaining reports how long until an action last performed at the
// given Unix timestamp may run again. Zero means ready now; a last of zero
// means the action has never run.
func CooldownRemaining(last int64, now time.Time, cooldown time.Duration) time.Duration {
	if last == 0 {
		return 0
	}
	elapsed := now.Sub(time.Unix(last, 0))
	if elapsed >= cooldown {
		return 0
	}
	return cooldown - elapsed
}

// DailyAmount draws a daily claim payout.
func DailyAmount(r Roller) int {
	return r.between(config.DailyMin, config.DailyMax)
}

// WorkAmount draws a work shift payout.
func WorkAmount(r Roller) int {
	return r.between(config.WorkMin, config.WorkMax)
}
