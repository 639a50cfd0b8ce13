// Package shop holds the guild shop commands: browsing, buying and the
// admin-side item management.
package shop

import (
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
)

type ShopCommand struct{}

func (c *ShopCommand) Name() string        { return "shop" }
func (c *ShopCommand) Description() string { return "Browse the server shop" }
func (c *ShopCommand) Category() string    { return "🛍️ Shop" }
func (c *ShopCommand) RequireAdmin() bool  { return false }
func (c *ShopCommand) RequireDev() bool    { return false }

func (c *ShopCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *ShopCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event

	items := context.Store.ShopItems(event.GuildID)
	if len(items) == 0 {
		return core.RespondEphemeral(session, event, "The shop is empty. Admins can stock it with `/shopadmin create`.")
	}

	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	embed := &discordgo.MessageEmbed{Title: "🛍️ Server Shop"}
	for _, id := range ids {
		item := items[id]
		name := item.Name
		if item.Emoji != "" {
			name = item.Emoji + " " + name
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s — %d coins", name, item.Price),
			Value: fmt.Sprintf("%s\nBuy with `/buy item:%s`", item.Description, id),
		})
	}
	return core.RespondEmbed(session, event, embed)
}

func init() {
	core.RegisterCommand(&ShopCommand{})
}
