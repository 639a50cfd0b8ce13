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

type FishCommand struct{}

func (c *FishCommand) Name() string        { return "fish" }
func (c *FishCommand) Description() string { return "Cast a line and sell whatever bites" }
func (c *FishCommand) Category() string    { return "💰 Economy" }
func (c *FishCommand) RequireAdmin() bool  { return false }
func (c *FishCommand) RequireDev() bool    { return false }

func (c *FishCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *FishCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event
	guildID, userID := event.GuildID, event.Member.User.ID
	now := time.Now()

	rec := context.Store.Economy(guildID, userID)
	if remaining := rewards.CooldownRemaining(rec.LastFishAt, now, config.FishCooldown); remaining > 0 {
		return core.RespondEphemeral(session, event,
			"The fish are wary. Try again in "+formatRemaining(remaining)+".")
	}

	catch := rewards.CatchFish(rewards.NewRoller())
	rec, err := context.Store.UpdateEconomy(guildID, userID, func(rec storage.EconomyRecord) storage.EconomyRecord {
		rec.Coins += catch.Value
		rec.LastFishAt = now.Unix()
		rec.FishCaught++
		return rec
	})
	if err != nil {
		return err
	}

	return core.Respond(session, event, fmt.Sprintf(
		"🎣 You caught a %s **%s** and sold it for **%d** coins! (total catches: %d)",
		catch.Emoji, catch.Name, catch.Value, rec.FishCaught))
}

func init() {
	core.RegisterCommand(&FishCommand{})
}
