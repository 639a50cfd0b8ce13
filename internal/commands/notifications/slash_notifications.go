// Package notifications controls the YouTube upload announcements.
package notifications

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
)

// PollNow is wired by the bot at startup. It runs a feed check immediately
// and returns how many announcements were delivered. Nil when no YouTube
// channel is configured.
var PollNow func(ctx context.Context) (int, error)

type NotificationsCommand struct{}

func (c *NotificationsCommand) Name() string        { return "notifications" }
func (c *NotificationsCommand) Description() string { return "Control YouTube upload announcements" }
func (c *NotificationsCommand) Category() string    { return "📺 Notifications" }
func (c *NotificationsCommand) RequireAdmin() bool  { return true }
func (c *NotificationsCommand) RequireDev() bool    { return false }

func (c *NotificationsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "toggle",
				Description: "Turn upload announcements on or off",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "enabled",
						Description: "Whether announcements are on",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Show the current announcement settings",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "check",
				Description: "Check the channel feed right now",
			},
		},
	}
}

func (c *NotificationsCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := sctx.Session, sctx.Event
	guildID := event.GuildID

	sub, opts := core.SubcommandOptions(event)
	switch sub {
	case "toggle":
		enabled := opts["enabled"].BoolValue()
		if err := sctx.Store.SetNotificationsEnabled(guildID, enabled); err != nil {
			return err
		}
		if enabled {
			return core.RespondEphemeral(session, event, "📺 Upload announcements are **on**.")
		}
		return core.RespondEphemeral(session, event, "📺 Upload announcements are **off**.")

	case "status":
		state := "off"
		if sctx.Store.NotificationsEnabled(guildID) {
			state = "on"
		}
		last := sctx.Store.LastVideoID(guildID)
		if last == "" {
			last = "none yet"
		}
		return core.RespondEphemeral(session, event,
			fmt.Sprintf("Announcements: **%s**\nLast announced video: `%s`", state, last))

	case "check":
		if PollNow == nil {
			return core.RespondEphemeral(session, event, "No YouTube channel is configured for this bot.")
		}
		count, err := PollNow(context.Background())
		if err != nil {
			return core.RespondEphemeral(session, event, "Feed check failed: "+err.Error())
		}
		if count == 0 {
			return core.RespondEphemeral(session, event, "Nothing new on the channel.")
		}
		return core.RespondEphemeral(session, event,
			fmt.Sprintf("Found a new upload, announced it in %d server(s).", count))
	}
	return nil
}

func init() {
	core.RegisterCommand(&NotificationsCommand{})
}
