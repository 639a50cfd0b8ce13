package economy

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/config"
	"toolybot/internal/core"
	"toolybot/internal/rewards"
	"toolybot/internal/storage"
)

type GambleCommand struct{}

func (c *GambleCommand) Name() string        { return "gamble" }
func (c *GambleCommand) Description() string { return "Try your luck at the casino" }
func (c *GambleCommand) Category() string    { return "💰 Economy" }
func (c *GambleCommand) RequireAdmin() bool  { return false }
func (c *GambleCommand) RequireDev() bool    { return false }

func (c *GambleCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minBet := float64(config.GambleMinBet)
	betOption := func() *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "bet",
			Description: "How many coins to stake",
			Required:    true,
			MinValue:    &minBet,
		}
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "slots",
				Description: "Spin the slot machine",
				Options:     []*discordgo.ApplicationCommandOption{betOption()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "dice",
				Description: "Roll against the house",
				Options:     []*discordgo.ApplicationCommandOption{betOption()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "coinflip",
				Description: "Call the coin",
				Options: []*discordgo.ApplicationCommandOption{
					betOption(),
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "side",
						Description: "Heads or tails",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Heads", Value: "heads"},
							{Name: "Tails", Value: "tails"},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "roulette",
				Description: "Bet on a color",
				Options: []*discordgo.ApplicationCommandOption{
					betOption(),
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "color",
						Description: "Red, black or green",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Red", Value: "red"},
							{Name: "Black", Value: "black"},
							{Name: "Green (14x)", Value: "green"},
						},
					},
				},
			},
		},
	}
}

func (c *GambleCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event
	guildID, userID := event.GuildID, event.Member.User.ID

	game, opts := core.SubcommandOptions(event)
	if game == "" {
		return nil
	}
	bet := int(opts["bet"].IntValue())

	rec := context.Store.Economy(guildID, userID)
	if err := rewards.ValidateBet(bet, rec.Coins); err != nil {
		switch {
		case errors.Is(err, rewards.ErrBetTooSmall):
			return core.RespondEphemeral(session, event,
				fmt.Sprintf("The minimum bet is %d coins.", config.GambleMinBet))
		case errors.Is(err, rewards.ErrBetOverLimit):
			return core.RespondEphemeral(session, event,
				fmt.Sprintf("You can stake at most half your wallet (%d coins).", rec.Coins/2))
		default:
			return err
		}
	}

	roller := rewards.NewRoller()
	var (
		outcome rewards.Outcome
		err     error
	)
	switch game {
	case "slots":
		outcome = rewards.PlaySlots(bet, roller)
	case "dice":
		outcome = rewards.PlayDice(bet, roller)
	case "coinflip":
		outcome, err = rewards.PlayCoinflip(bet, opts["side"].StringValue(), roller)
	case "roulette":
		outcome, err = rewards.PlayRoulette(bet, opts["color"].StringValue(), roller)
	default:
		return nil
	}
	if err != nil {
		return core.RespondEphemeral(session, event, err.Error())
	}

	rec, err = context.Store.UpdateEconomy(guildID, userID, func(rec storage.EconomyRecord) storage.EconomyRecord {
		rec.Coins -= bet
		rec.TotalGambled += bet
		if outcome.Won {
			rec.Coins += outcome.Payout
			rec.GamblingWins++
		} else {
			rec.GamblingLosses++
		}
		return rec
	})
	if err != nil {
		return err
	}

	if outcome.Won {
		return core.Respond(session, event, fmt.Sprintf(
			"🎰 %s\nYou won **%d** coins! Wallet: %d", outcome.Detail, outcome.Payout-bet, rec.Coins))
	}
	return core.Respond(session, event, fmt.Sprintf(
		"🎰 %s\nYou lost **%d** coins. Wallet: %d", outcome.Detail, bet, rec.Coins))
}

func init() {
	core.RegisterCommand(&GambleCommand{})
}
