package economy

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
	"toolybot/internal/storage"
)

type GiveCommand struct{}

func (c *GiveCommand) Name() string        { return "give" }
func (c *GiveCommand) Description() string { return "Give coins to another member" }
func (c *GiveCommand) Category() string    { return "💰 Economy" }
func (c *GiveCommand) RequireAdmin() bool  { return false }
func (c *GiveCommand) RequireDev() bool    { return false }

func (c *GiveCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minAmount := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Who receives the coins",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "How many coins to give",
				Required:    true,
				MinValue:    &minAmount,
			},
		},
	}
}

func (c *GiveCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event
	opts := core.Options(event)

	target := opts["member"].UserValue(session)
	amount := int(opts["amount"].IntValue())
	giver := event.Member.User

	if target.ID == giver.ID {
		return core.RespondEphemeral(session, event, "You can't give coins to yourself.")
	}
	if target.Bot {
		return core.RespondEphemeral(session, event, "Bots have no use for coins.")
	}

	err := context.Store.Transfer(event.GuildID, giver.ID, target.ID, amount)
	switch {
	case errors.Is(err, storage.ErrInsufficientCoins):
		return core.RespondEphemeral(session, event, "You don't have that many coins in your wallet.")
	case errors.Is(err, storage.ErrAmountNotPositive):
		return core.RespondEphemeral(session, event, "The amount must be positive.")
	case err != nil:
		return err
	}

	return core.Respond(session, event,
		fmt.Sprintf("🎁 <@%s> gave **%d** coins to <@%s>!", giver.ID, amount, target.ID))
}

func init() {
	core.RegisterCommand(&GiveCommand{})
}
