package moderation

import (
	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
)

type BanCommand struct{}

func (c *BanCommand) Name() string        { return "ban" }
func (c *BanCommand) Description() string { return "Ban a member from the server" }
func (c *BanCommand) Category() string    { return "🛡️ Moderation" }
func (c *BanCommand) RequireAdmin() bool  { return true }
func (c *BanCommand) RequireDev() bool    { return false }

func (c *BanCommand) SlashDefinition() *discordgo.ApplicationCommand {
	maxDays := float64(7)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Who to ban",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Why they are being banned",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "delete_days",
				Description: "Days of their messages to delete (0-7)",
				Required:    false,
				MaxValue:    maxDays,
			},
		},
	}
}

func (c *BanCommand) Run(ctx interface{}) error {
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
	deleteDays := 0
	if opt, ok := opts["delete_days"]; ok {
		deleteDays = int(opt.IntValue())
	}

	if target.ID == event.Member.User.ID {
		return core.RespondEphemeral(session, event, "You can't ban yourself.")
	}

	if err := session.GuildBanCreateWithReason(event.GuildID, target.ID, reason, deleteDays); err != nil {
		return core.RespondEphemeral(session, event, "Ban failed: "+err.Error())
	}
	return core.Respond(session, event, "🔨 **"+target.Username+"** was banned. Reason: "+reason)
}

func init() {
	core.RegisterCommand(&BanCommand{})
}
