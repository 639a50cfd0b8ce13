package shop

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/config"
	"toolybot/internal/core"
	"toolybot/internal/storage"
)

type ShopAdminCommand struct{}

func (c *ShopAdminCommand) Name() string        { return "shopadmin" }
func (c *ShopAdminCommand) Description() string { return "Manage the server shop" }
func (c *ShopAdminCommand) Category() string    { return "🛍️ Shop" }
func (c *ShopAdminCommand) RequireAdmin() bool  { return true }
func (c *ShopAdminCommand) RequireDev() bool    { return false }

func (c *ShopAdminCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minPrice := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "create",
				Description: "Add an item to the shop",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "id",
						Description: "Short item id used with /buy",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Display name",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "price",
						Description: "Price in coins",
						Required:    true,
						MinValue:    &minPrice,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "description",
						Description: "What the buyer gets",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "emoji",
						Description: "Emoji shown in the listing",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "type",
						Description: "Badge (owned once) or consumable (can be re-bought)",
						Required:    false,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Badge", Value: storage.ItemTypeBadge},
							{Name: "Consumable", Value: storage.ItemTypeConsumable},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Role granted on purchase (makes this a role item)",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "delete",
				Description: "Remove an item from the shop",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "id",
						Description: "The item id to remove",
						Required:    true,
					},
				},
			},
		},
	}
}

func (c *ShopAdminCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event

	sub, opts := core.SubcommandOptions(event)
	switch sub {
	case "create":
		return c.create(context, opts)
	case "delete":
		id := opts["id"].StringValue()
		err := context.Store.DeleteShopItem(event.GuildID, id)
		if errors.Is(err, storage.ErrNotFound) {
			return core.RespondEphemeral(session, event, "No item with that id.")
		} else if err != nil {
			return err
		}
		return core.RespondEphemeral(session, event, fmt.Sprintf("Item `%s` removed.", id))
	}
	return nil
}

func (c *ShopAdminCommand) create(context *core.SlashContext, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	session, event := context.Session, context.Event

	id := strings.ToLower(strings.TrimSpace(opts["id"].StringValue()))
	item := storage.ShopItem{
		Name:      opts["name"].StringValue(),
		Price:     int(opts["price"].IntValue()),
		Type:      storage.ItemTypeBadge,
		CreatedAt: time.Now().Unix(),
		CreatorID: event.Member.User.ID,
	}
	if opt, ok := opts["description"]; ok {
		item.Description = opt.StringValue()
	}
	if opt, ok := opts["emoji"]; ok {
		item.Emoji = opt.StringValue()
	}
	if opt, ok := opts["type"]; ok {
		item.Type = opt.StringValue()
	}
	// A role option wins over the type choice.
	if opt, ok := opts["role"]; ok {
		item.Type = storage.ItemTypeRole
		item.RoleID = opt.RoleValue(session, event.GuildID).ID
	}

	switch {
	case len(item.Name) > config.ShopNameMax:
		return core.RespondEphemeral(session, event,
			fmt.Sprintf("The name can be at most %d characters.", config.ShopNameMax))
	case len(item.Description) > config.ShopDescMax:
		return core.RespondEphemeral(session, event,
			fmt.Sprintf("The description can be at most %d characters.", config.ShopDescMax))
	case utf8.RuneCountInString(item.Emoji) > config.ShopEmojiMax:
		return core.RespondEphemeral(session, event, "That emoji is too long.")
	}

	err := context.Store.CreateShopItem(event.GuildID, id, item)
	switch {
	case errors.Is(err, storage.ErrDuplicateItem):
		return core.RespondEphemeral(session, event, "An item with that id already exists.")
	case errors.Is(err, storage.ErrInvalidItem):
		return core.RespondEphemeral(session, event, "The item is invalid. Check the id and price.")
	case err != nil:
		return err
	}

	return core.RespondEphemeral(session, event,
		fmt.Sprintf("Item **%s** added for %d coins.", item.Name, item.Price))
}

func init() {
	core.RegisterCommand(&ShopAdminCommand{})
}
