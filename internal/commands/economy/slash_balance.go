package economy

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
)

type BalanceCommand struct{}

func (c *BalanceCommand) Name() string        { return "balance" }
func (c *BalanceCommand) Description() string { return "Show a member's wallet and bank" }
func (c *BalanceCommand) Category() string    { return "💰 Economy" }
func (c *BalanceCommand) RequireAdmin() bool  { return false }
func (c *BalanceCommand) RequireDev() bool    { return false }

func (c *BalanceCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Whose balance to show (defaults to you)",
				Required:    false,
			},
		},
	}
}

func (c *BalanceCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event

	user := event.Member.User
	if opt, ok := core.Options(event)["member"]; ok {
		user = opt.UserValue(session)
	}

	rec := context.Store.Economy(event.GuildID, user.ID)
	embed := &discordgo.MessageEmbed{
		Title: user.Username + "'s balance",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💵 Wallet", Value: fmt.Sprintf("%d", rec.Coins), Inline: true},
			{Name: "🏦 Bank", Value: fmt.Sprintf("%d", rec.Bank), Inline: true},
			{Name: "Total", Value: fmt.Sprintf("%d", rec.Coins+rec.Bank), Inline: true},
		},
	}
	return core.RespondEmbed(session, event, embed)
}

func init() {
	core.RegisterCommand(&BalanceCommand{})
}
