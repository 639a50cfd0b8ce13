// Package moderation holds warnings, kicks, bans, timeouts and message
// purges.
package moderation

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/config"
	"toolybot/internal/core"
)

type WarnCommand struct{}

func (c *WarnCommand) Name() string        { return "warn" }
func (c *WarnCommand) Description() string { return "Manage member warnings" }
func (c *WarnCommand) Category() string    { return "🛡️ Moderation" }
func (c *WarnCommand) RequireAdmin() bool  { return true }
func (c *WarnCommand) RequireDev() bool    { return false }

func (c *WarnCommand) SlashDefinition() *discordgo.ApplicationCommand {
	memberOption := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "member",
			Description: desc,
			Required:    true,
		}
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Warn a member",
				Options: []*discordgo.ApplicationCommandOption{
					memberOption("Who to warn"),
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "reason",
						Description: "Why the warning is issued",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List a member's warnings",
				Options:     []*discordgo.ApplicationCommandOption{memberOption("Whose warnings to list")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "clear",
				Description: "Clear a member's warnings",
				Options:     []*discordgo.ApplicationCommandOption{memberOption("Whose warnings to clear")},
			},
		},
	}
}

func (c *WarnCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event

	sub, opts := core.SubcommandOptions(event)
	target := opts["member"].UserValue(session)

	switch sub {
	case "add":
		return c.add(context, target, opts["reason"].StringValue())

	case "list":
		warnings := context.Store.Warnings(event.GuildID, target.ID)
		if len(warnings) == 0 {
			return core.RespondEphemeral(session, event, target.Username+" has no warnings.")
		}
		var lines []string
		for i, w := range warnings {
			lines = append(lines, fmt.Sprintf("%d. %s (<@%s>, %s)",
				i+1, w.Reason, w.ModeratorID,
				time.Unix(w.Timestamp, 0).UTC().Format("2006-01-02")))
		}
		return core.RespondEmbed(session, event, &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("Warnings for %s (%d)", target.Username, len(warnings)),
			Description: strings.Join(lines, "\n"),
		})

	case "clear":
		if err := context.Store.ClearWarnings(event.GuildID, target.ID); err != nil {
			return err
		}
		return core.RespondEphemeral(session, event, "Warnings cleared for "+target.Username+".")
	}
	return nil
}

func (c *WarnCommand) add(context *core.SlashContext, target *discordgo.User, reason string) error {
	session, event := context.Session, context.Event

	if target.Bot {
		return core.RespondEphemeral(session, event, "Bots can't be warned.")
	}
	if len(reason) > config.WarnReasonMax {
		return core.RespondEphemeral(session, event,
			fmt.Sprintf("The reason can be at most %d characters.", config.WarnReasonMax))
	}

	_, count, err := context.Store.AddWarning(event.GuildID, target.ID, reason, event.Member.User.ID, time.Now())
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("⚠️ <@%s> has been warned (%d/%d): %s", target.ID, count, config.WarnThreshold, reason)

	// Crossing the threshold earns an automatic timeout.
	if count >= config.WarnThreshold {
		until := time.Now().Add(config.WarnTimeout)
		if err := session.GuildMemberTimeout(event.GuildID, target.ID, &until); err != nil {
			context.Log.Warn().Err(err).Str("user", target.ID).Msg("auto timeout failed")
			msg += "\nThey reached the warning threshold, but I couldn't time them out."
		} else {
			msg += fmt.Sprintf("\n⏰ They reached %d warnings and were timed out for %s.",
				config.WarnThreshold, config.WarnTimeout)
		}
	}
	return core.Respond(session, event, msg)
}

func init() {
	core.RegisterCommand(&WarnCommand{})
}
