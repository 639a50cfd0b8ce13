package general

import (
	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
)

type SayCommand struct{}

func (c *SayCommand) Name() string        { return "say" }
func (c *SayCommand) Description() string { return "Send a message on the bot's behalf" }
func (c *SayCommand) Category() string    { return "🛠️ General" }
func (c *SayCommand) RequireAdmin() bool  { return true }
func (c *SayCommand) RequireDev() bool    { return false }

func (c *SayCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message",
				Description: "What the bot should say",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "Target channel (defaults to the current one)",
				Required:    false,
			},
		},
	}
}

func (c *SayCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event

	opts := core.Options(event)
	message := opts["message"].StringValue()

	channelID := event.ChannelID
	if opt, ok := opts["channel"]; ok {
		channelID = opt.ChannelValue(session).ID
	}

	if _, err := session.ChannelMessageSend(channelID, message); err != nil {
		return core.RespondEphemeral(session, event, "Could not send the message: "+err.Error())
	}
	return core.RespondEphemeral(session, event, "Sent.")
}

func init() {
	core.RegisterCommand(&SayCommand{})
}
