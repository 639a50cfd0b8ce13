package shop

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
	"toolybot/internal/storage"
)

type BuyCommand struct{}

func (c *BuyCommand) Name() string        { return "buy" }
func (c *BuyCommand) Description() string { return "Buy an item from the server shop" }
func (c *BuyCommand) Category() string    { return "🛍️ Shop" }
func (c *BuyCommand) RequireAdmin() bool  { return false }
func (c *BuyCommand) RequireDev() bool    { return false }

func (c *BuyCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "item",
				Description: "The item id shown in /shop",
				Required:    true,
			},
		},
	}
}

func (c *BuyCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event
	guildID, userID := event.GuildID, event.Member.User.ID
	itemID := core.Options(event)["item"].StringValue()

	item, err := context.Store.PurchaseItem(guildID, userID, itemID, time.Now())
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return core.RespondEphemeral(session, event, "No such item. Check `/shop` for the ids.")
	case errors.Is(err, storage.ErrAlreadyOwned):
		return core.RespondEphemeral(session, event, "You already own **"+item.Name+"**.")
	case errors.Is(err, storage.ErrInsufficientCoins):
		return core.RespondEphemeral(session, event,
			fmt.Sprintf("You need %d coins in your wallet for that.", item.Price))
	case err != nil:
		return err
	}

	// Role items grant the role on purchase.
	if item.Type == storage.ItemTypeRole && item.RoleID != "" {
		if err := session.GuildMemberRoleAdd(guildID, userID, item.RoleID); err != nil {
			context.Log.Warn().Err(err).Str("role", item.RoleID).Msg("role grant failed after purchase")
			return core.RespondEphemeral(session, event,
				"Purchase complete, but I couldn't assign the role. An admin may need to check my permissions.")
		}
	}

	return core.Respond(session, event,
		fmt.Sprintf("✅ You bought **%s** for **%d** coins!", item.Name, item.Price))
}

func init() {
	core.RegisterCommand(&BuyCommand{})
}
