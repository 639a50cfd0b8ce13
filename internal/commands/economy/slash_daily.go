package economy

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/config"
	"toolybot/internal/core"
	"toolybot/internal/rewards"
	"toolybot/internal/storage"
)

type DailyCommand struct{}

func (c *DailyCommand) Name() string        { return "daily" }
func (c *DailyCommand) Description() string { return "Claim your daily coins" }
func (c *DailyCommand) Category() string    { return "💰 Economy" }
func (c *DailyCommand) RequireAdmin() bool  { return false }
func (c *DailyCommand) RequireDev() bool    { return false }

func (c *DailyCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *DailyCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event
	guildID, userID := event.GuildID, event.Member.User.ID
	now := time.Now()

	rec := context.Store.Economy(guildID, userID)
	if remaining := rewards.CooldownRemaining(rec.LastDailyAt, now, config.DailyCooldown); remaining > 0 {
		return core.RespondEphemeral(session, event,
			"You already claimed today. Come back in "+formatRemaining(remaining)+".")
	}

	amount := rewards.DailyAmount(rewards.NewRoller())
	rec, err := context.Store.UpdateEconomy(guildID, userID, func(rec storage.EconomyRecord) storage.EconomyRecord {
		rec.Coins += amount
		rec.LastDailyAt = now.Unix()
		return rec
	})
	if err != nil {
		return err
	}

	return core.Respond(session, event,
		fmt.Sprintf("💰 You claimed **%d** coins! Wallet: %d", amount, rec.Coins))
}

func init() {
	core.RegisterCommand(&DailyCommand{})
}
