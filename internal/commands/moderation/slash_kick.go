package moderation

import (
	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
)

type KickCommand struct{}

func (c *KickCommand) Name() string        { return "kick" }
func (c *KickCommand) Description() string { return "Kick a member from the server" }
func (c *KickCommand) Category() string    { return "🛡️ Moderation" }
func (c *KickCommand) RequireAdmin() bool  { return true }
func (c *KickCommand) RequireDev() bool    { return false }

func (c *KickCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Who to kick",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Why they are being kicked",
				Required:    false,
			},
		},
	}
}

func (c *KickCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event
	opts := core.Options(event)

	target := opts["member"].UserValue(session)
	reason := "No reason given"
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}

	if target.ID == event.Member.User.ID {
		return core.RespondEphemeral(session, event, "You can't kick yourself.")
	}

	if err := session.GuildMemberDeleteWithReason(event.GuildID, target.ID, reason); err != nil {
		return core.RespondEphemeral(session, event, "Kick failed: "+err.Error())
	}
	return core.Respond(session, event, "👢 **"+target.Username+"** was kicked. Reason: "+reason)
}

func init() {
	core.RegisterCommand(&KickCommand{})
}
