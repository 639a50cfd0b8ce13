package rewards

import (
	"testing"
	"time"

	"toolybot/internal/config"
	"toolybot/internal/storage"
)

// fixedRoller always returns the given values.
func fixedRoller(intn int, f float64) Roller {
	return Roller{
		Intn:    func(int) int { return intn },
		Float64: func() float64 { return f },
	}
}

func TestCooldownRemaining(t *testing.T) {
	now := time.Unix(100000, 0)
	cd := time.Minute

	if got := CooldownRemaining(0, now, cd); got != 0 {
		t.Fatalf("never-run action should be ready, got %v", got)
	}
	// Exactly at the boundary is ready.
	last := now.Add(-cd).Unix()
	if got := CooldownRemaining(last, now, cd); got != 0 {
		t.Fatalf("boundary should be ready, got %v", got)
	}
	// One second short is rejected with the remainder.
	last = now.Add(-cd + time.Second).Unix()
	if got := CooldownRemaining(last, now, cd); got != time.Second {
		t.Fatalf("remaining = %v, want 1s", got)
	}
}

func TestDailyAndWorkAmountBounds(t *testing.T) {
	r := NewRoller()
	for i := 0; i < 200; i++ {
		if got := DailyAmount(r); got < config.DailyMin || got > config.DailyMax {
			t.Fatalf("daily amount %d out of range", got)
		}
		if got := WorkAmount(r); got < config.WorkMin || got > config.WorkMax {
			t.Fatalf("work amount %d out of range", got)
		}
	}
}

func TestApplyXPRespectsCooldown(t *testing.T) {
	now := time.Unix(100000, 0)
	rec := storage.LevelRecord{Level: 1, XP: 10, LastMessageAt: now.Add(-30 * time.Second).Unix()}

	got, _, ok := ApplyXP(rec, now, fixedRoller(0, 0))
	if ok {
		t.Fatalf("award inside cooldown")
	}
	if got != rec {
		t.Fatalf("record changed on rejected award: %+v", got)
	}
}

func TestApplyXPLevelUpDiscardsOverflow(t *testing.T) {
	now := time.Unix(100000, 0)
	rec := storage.LevelRecord{Level: 1, XP: 95}

	// Intn(16) result 0 makes the award the minimum of 10.
	got, res, ok := ApplyXP(rec, now, fixedRoller(0, 0))
	if !ok {
		t.Fatalf("award rejected")
	}
	if res.Awarded != config.XPMin {
		t.Fatalf("awarded %d, want %d", res.Awarded, config.XPMin)
	}
	if !res.LeveledUp || res.NewLevel != 2 {
		t.Fatalf("expected level-up to 2: %+v", res)
	}
	if got.Level != 2 || got.XP != 0 {
		t.Fatalf("overflow not discarded: %+v", got)
	}
	if res.CoinBonus != 2*config.LevelUpCoins {
		t.Fatalf("coin bonus = %d, want %d", res.CoinBonus, 2*config.LevelUpCoins)
	}
	if got.LastMessageAt != now.Unix() {
		t.Fatalf("last message not stamped: %d", got.LastMessageAt)
	}
}

func TestApplyXPBelowThreshold(t *testing.T) {
	now := time.Unix(100000, 0)
	rec := storage.LevelRecord{Level: 3, XP: 0}

	got, res, ok := ApplyXP(rec, now, fixedRoller(0, 0))
	if !ok || res.LeveledUp {
		t.Fatalf("unexpected level-up: %+v", res)
	}
	if got.XP != config.XPMin || got.Level != 3 {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestCatchFishCoversTable(t *testing.T) {
	// Walking Intn's whole range must hit every entry and nothing else.
	total := 0
	for _, f := range config.FishTable {
		total += f.Weight
	}

	seen := map[string]int{}
	for pick := 0; pick < total; pick++ {
		f := CatchFish(Roller{Intn: func(int) int { return pick }})
		seen[f.Name]++
	}
	for _, f := range config.FishTable {
		if seen[f.Name] != f.Weight {
			t.Fatalf("%s drawn %d times, want %d", f.Name, seen[f.Name], f.Weight)
		}
	}
}

func TestValidateBet(t *testing.T) {
	if err := ValidateBet(5, 1000); err != ErrBetTooSmall {
		t.Fatalf("tiny bet: %v", err)
	}
	if err := ValidateBet(501, 1000); err != ErrBetOverLimit {
		t.Fatalf("over-limit bet: %v", err)
	}
	if err := ValidateBet(500, 1000); err != nil {
		t.Fatalf("half-wallet bet rejected: %v", err)
	}
	if err := ValidateBet(10, 20); err != nil {
		t.Fatalf("minimum bet rejected: %v", err)
	}
}

func TestPlaySlots(t *testing.T) {
	// All three reels on index 0: three of a kind pays 5x.
	out := PlaySlots(100, fixedRoller(0, 0))
	if !out.Won || out.Payout != 500 {
		t.Fatalf("triple: %+v", out)
	}

	// Distinct reels lose.
	i := -1
	r := Roller{Intn: func(int) int { i++; return i }}
	out = PlaySlots(100, r)
	if out.Won || out.Payout != 0 {
		t.Fatalf("distinct reels: %+v", out)
	}
}

func TestPlayCoinflip(t *testing.T) {
	out, err := PlayCoinflip(100, "heads", fixedRoller(0, 0.0))
	if err != nil || !out.Won || out.Payout != 200 {
		t.Fatalf("win: %+v err=%v", out, err)
	}

	out, err = PlayCoinflip(100, "heads", fixedRoller(0, 0.99))
	if err != nil || out.Won || out.Payout != 0 {
		t.Fatalf("loss: %+v err=%v", out, err)
	}

	if _, err := PlayCoinflip(100, "edge", fixedRoller(0, 0)); err != ErrUnknownChoice {
		t.Fatalf("bad choice: %v", err)
	}
}

func TestPlayRoulette(t *testing.T) {
	// Float64 pinned at 0 lands on green every time.
	out, err := PlayRoulette(100, "green", fixedRoller(0, 0.0))
	if err != nil || !out.Won || out.Payout != 1400 {
		t.Fatalf("green win: %+v err=%v", out, err)
	}

	out, err = PlayRoulette(100, "black", fixedRoller(0, 0.0))
	if err != nil || out.Won {
		t.Fatalf("green landing should lose a black bet: %+v", out)
	}

	// Float64 pinned at 0.4 lands red; a red bet pays 2x.
	out, err = PlayRoulette(100, "red", fixedRoller(0, 0.4))
	if err != nil || !out.Won || out.Payout != 200 {
		t.Fatalf("red win: %+v err=%v", out, err)
	}

	if _, err := PlayRoulette(100, "blue", fixedRoller(0, 0)); err != ErrUnknownChoice {
		t.Fatalf("bad choice: %v", err)
	}
}

func TestPlayDice(t *testing.T) {
	out := PlayDice(100, fixedRoller(2, 0.0))
	if !out.Won {
		t.Fatalf("pinned low roll should win: %+v", out)
	}
	// Multiplier at Float64=0 is the minimum.
	if out.Payout != int(100*config.DiceMultiplierMin) {
		t.Fatalf("payout = %d, want %d", out.Payout, int(100*config.DiceMultiplierMin))
	}

	out = PlayDice(100, fixedRoller(2, 0.99))
	if out.Won || out.Payout != 0 {
		t.Fatalf("pinned high roll should lose: %+v", out)
	}
}
