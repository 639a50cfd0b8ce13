package moderation

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/config"
	"toolybot/internal/core"
)

type PurgeCommand struct{}

func (c *PurgeCommand) Name() string        { return "purge" }
func (c *PurgeCommand) Description() string { return "Bulk-delete recent messages in this channel" }
func (c *PurgeCommand) Category() string    { return "🛡️ Moderation" }
func (c *PurgeCommand) RequireAdmin() bool  { return true }
func (c *PurgeCommand) RequireDev() bool    { return false }

func (c *PurgeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minAmount := float64(1)
	maxAmount := float64(config.PurgeMaxAmount)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: fmt.Sprintf("How many messages to delete (1-%d)", config.PurgeMaxAmount),
				Required:    true,
				MinValue:    &minAmount,
				MaxValue:    maxAmount,
			},
		},
	}
}

func (c *PurgeCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event
	amount := int(core.Options(event)["amount"].IntValue())

	msgs, err := session.ChannelMessages(event.ChannelID, amount, "", "", "")
	if err != nil {
		return core.RespondEphemeral(session, event, "Could not fetch messages: "+err.Error())
	}
	if len(msgs) == 0 {
		return core.RespondEphemeral(session, event, "Nothing to delete.")
	}

	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	if err := session.ChannelMessagesBulkDelete(event.ChannelID, ids); err != nil {
		return core.RespondEphemeral(session, event, "Bulk delete failed: "+err.Error())
	}

	return core.RespondEphemeral(session, event,
		fmt.Sprintf("🧹 Deleted %d messages.", len(ids)))
}

func init() {
	core.RegisterCommand(&PurgeCommand{})
}
