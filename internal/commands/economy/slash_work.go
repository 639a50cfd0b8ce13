package economy

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/config"
	"toolybot/internal/core"
	"toolybot/internal/rewards"
	"toolybot/internal/storage"
)

var workLines = []string{
	"You fixed a leaky faucet",
	"You walked a pack of dogs",
	"You moderated a heated forum thread",
	"You delivered pizzas across town",
	"You debugged someone's spreadsheet",
	"You painted a fence",
}

type WorkCommand struct{}

func (c *WorkCommand) Name() string        { return "work" }
func (c *WorkCommand) Description() string { return "Work a short shift for coins" }
func (c *WorkCommand) Category() string    { return "💰 Economy" }
func (c *WorkCommand) RequireAdmin() bool  { return false }
func (c *WorkCommand) RequireDev() bool    { return false }

func (c *WorkCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *WorkCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event
	guildID, userID := event.GuildID, event.Member.User.ID
	now := time.Now()

	rec := context.Store.Economy(guildID, userID)
	if remaining := rewards.CooldownRemaining(rec.LastWorkAt, now, config.WorkCooldown); remaining > 0 {
		return core.RespondEphemeral(session, event,
			"You're still tired. Rest for "+formatRemaining(remaining)+".")
	}

	amount := rewards.WorkAmount(rewards.NewRoller())
	rec, err := context.Store.UpdateEconomy(guildID, userID, func(rec storage.EconomyRecord) storage.EconomyRecord {
		rec.Coins += amount
		rec.LastWorkAt = now.Unix()
		return rec
	})
	if err != nil {
		return err
	}

	line := workLines[rand.Intn(len(workLines))]
	return core.Respond(session, event,
		fmt.Sprintf("💼 %s and earned **%d** coins! Wallet: %d", line, amount, rec.Coins))
}

func init() {
	core.RegisterCommand(&WorkCommand{})
}
