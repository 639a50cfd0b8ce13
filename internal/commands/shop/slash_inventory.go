package shop

import (
	"fmt"
	"sort"
	"time"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
)

type InventoryCommand struct{}

func (c *InventoryCommand) Name() string        { return "inventory" }
func (c *InventoryCommand) Description() string { return "Show the items you own" }
func (c *InventoryCommand) Category() string    { return "🛍️ Shop" }
func (c *InventoryCommand) RequireAdmin() bool  { return false }
func (c *InventoryCommand) RequireDev() bool    { return false }

func (c *InventoryCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *InventoryCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event
	guildID, userID := event.GuildID, event.Member.User.ID

	inv := context.Store.Inventory(guildID, userID)
	if len(inv) == 0 {
		return core.RespondEphemeral(session, event, "Your inventory is empty. Browse `/shop` to change that.")
	}

	ids := make([]string, 0, len(inv))
	for id := range inv {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := context.Store.ShopItems(guildID)
	embed := &discordgo.MessageEmbed{Title: "🎒 " + event.Member.User.Username + "'s inventory"}
	for _, id := range ids {
		entry := inv[id]
		name := id
		if item, ok := items[id]; ok {
			name = item.Name
			if item.Emoji != "" {
				name = item.Emoji + " " + name
			}
		}
		value := "Bought " + time.Unix(entry.PurchasedAt, 0).UTC().Format("2006-01-02")
		if entry.Quantity > 1 {
			value = fmt.Sprintf("x%d, first bought %s", entry.Quantity,
				time.Unix(entry.PurchasedAt, 0).UTC().Format("2006-01-02"))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: name, Value: value, Inline: true,
		})
	}
	return core.RespondEmbed(session, event, embed)
}

func init() {
	core.RegisterCommand(&InventoryCommand{})
}
