package moderation

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/config"
	"toolybot/internal/core"
)

type TimeoutCommand struct{}

func (c *TimeoutCommand) Name() string        { return "timeout" }
func (c *TimeoutCommand) Description() string { return "Time a member out, or lift a timeout" }
func (c *TimeoutCommand) Category() string    { return "🛡️ Moderation" }
func (c *TimeoutCommand) RequireAdmin() bool  { return true }
func (c *TimeoutCommand) RequireDev() bool    { return false }

func (c *TimeoutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minMinutes := float64(0)
	maxMinutes := float64(config.TimeoutMaxMins)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Who to time out",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "minutes",
				Description: "Timeout length in minutes (0 lifts an active timeout)",
				Required:    true,
				MinValue:    &minMinutes,
				MaxValue:    maxMinutes,
			},
		},
	}
}

func (c *TimeoutCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event
	opts := core.Options(event)

	target := opts["member"].UserValue(session)
	minutes := int(opts["minutes"].IntValue())

	if minutes == 0 {
		if err := session.GuildMemberTimeout(event.GuildID, target.ID, nil); err != nil {
			return core.RespondEphemeral(session, event, "Could not lift the timeout: "+err.Error())
		}
		return core.Respond(session, event, "⏰ Timeout lifted for **"+target.Username+"**.")
	}

	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	if err := session.GuildMemberTimeout(event.GuildID, target.ID, &until); err != nil {
		return core.RespondEphemeral(session, event, "Timeout failed: "+err.Error())
	}
	return core.Respond(session, event,
		fmt.Sprintf("⏰ **%s** was timed out for %d minutes.", target.Username, minutes))
}

func init() {
	core.RegisterCommand(&TimeoutCommand{})
}
