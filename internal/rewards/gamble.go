package rewards

import (
	"errors"
	"fmt"
	"strings"

	"toolybot/internal/config"
)

var (
	ErrBetTooSmall   = errors.New("bet below the table minimum")
	ErrBetOverLimit  = errors.New("bet exceeds the wallet limit")
	ErrUnknownChoice = errors.New("unknown choice")
)

// ValidateBet enforces the table rules: a minimum stake, and never more than
// half the wallet on one game.
func ValidateBet(bet, wallet int) error {
	if bet < config.GambleMinBet {
		return ErrBetTooSmall
	}
	limit := int(float64(wallet) * config.GambleMaxPercent)
	if bet > limit {
		return ErrBetOverLimit
	}
	return nil
}

// Outcome is the result of one game. Payout is the amount credited back on a
// win, already including the stake; it is zero on a loss. The caller debits
// the bet up front.
type Outcome struct {
	Won    bool
	Payout int
	Detail string
}

// PlaySlots spins three reels. Three of a kind pays 5x, a pair pays 2x.
func PlaySlots(bet int, r Roller) Outcome {
	reels := make([]string, 3)
	for i := range reels {
		reels[i] = config.SlotSymbols[r.Intn(len(config.SlotSymbols))]
	}

	counts := map[string]int{}
	best := 0
	for _, s := range reels {
		counts[s]++
		if counts[s] > best {
			best = counts[s]
		}
	}

	out := Outcome{Detail: strings.Join(reels, " | ")}
	if mult, ok := config.SlotPayouts[best]; ok {
		out.Won = true
		out.Payout = int(float64(bet) * mult)
	}
	return out
}

// PlayDice rolls against the house. Wins pay a random multiplier.
func PlayDice(bet int, r Roller) Outcome {
	roll := r.Intn(6) + 1
	house := r.Intn(6) + 1
	out := Outcome{Detail: fmt.Sprintf("You rolled %d, the house rolled %d", roll, house)}

	if r.Float64() >= config.DiceWinRate {
		return out
	}
	mult := config.DiceMultiplierMin + r.Float64()*(config.DiceMultiplierMax-config.DiceMultiplierMin)
	out.Won = true
	out.Payout = int(float64(bet) * mult)
	return out
}

// PlayCoinflip flips for heads or tails.
func PlayCoinflip(bet int, choice string, r Roller) (Outcome, error) {
	choice = strings.ToLower(choice)
	if choice != "heads" && choice != "tails" {
		return Outcome{}, ErrUnknownChoice
	}

	won := r.Float64() < config.CoinflipWinRate
	landed := choice
	if !won {
		if choice == "heads" {
			landed = "tails"
		} else {
			landed = "heads"
		}
	}

	out := Outcome{Won: won, Detail: "The coin landed on " + landed}
	if won {
		out.Payout = int(float64(bet) * config.CoinflipMultiplier)
	}
	return out, nil
}

// PlayRoulette bets on red, black or green. Green is rare and pays 14x.
func PlayRoulette(bet int, choice string, r Roller) (Outcome, error) {
	choice = strings.ToLower(choice)
	if choice != "red" && choice != "black" && choice != "green" {
		return Outcome{}, ErrUnknownChoice
	}

	landed := "green"
	if r.Float64() >= config.RouletteGreenOdds {
		if r.Float64() < 0.5 {
			landed = "red"
		} else {
			landed = "black"
		}
	}

	out := Outcome{Detail: "The ball landed on " + landed}
	if landed != choice {
		return out, nil
	}
	out.Won = true
	mult := config.RouletteColorPayout
	if landed == "green" {
		mult = config.RouletteGreenPayout
	}
	out.Payout = int(float64(bet) * mult)
	return out, nil
}
