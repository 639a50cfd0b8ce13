// Package reactionroles manages emoji-to-role bindings on messages.
package reactionroles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
)

type ReactionRoleCommand struct{}

func (c *ReactionRoleCommand) Name() string        { return "reactionrole" }
func (c *ReactionRoleCommand) Description() string { return "Bind roles to message reactions" }
func (c *ReactionRoleCommand) Category() string    { return "🎭 Roles" }
func (c *ReactionRoleCommand) RequireAdmin() bool  { return true }
func (c *ReactionRoleCommand) RequireDev() bool    { return false }

func (c *ReactionRoleCommand) SlashDefinition() *discordgo.ApplicationCommand {
	messageOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "message_id",
		Description: "The message carrying the reactions",
		Required:    true,
	}
	emojiOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "emoji",
		Description: "The reaction emoji",
		Required:    true,
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Bind an emoji on a message to a role",
				Options: []*discordgo.ApplicationCommandOption{
					messageOption,
					emojiOption,
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "The role to grant",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Remove a binding",
				Options:     []*discordgo.ApplicationCommandOption{messageOption, emojiOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List every binding in this server",
			},
		},
	}
}

func (c *ReactionRoleCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event

	sub, opts := core.SubcommandOptions(event)
	switch sub {
	case "add":
		messageID := opts["message_id"].StringValue()
		emoji := strings.TrimSpace(opts["emoji"].StringValue())
		role := opts["role"].RoleValue(session, event.GuildID)

		// Seed the reaction so members have something to click.
		if err := session.MessageReactionAdd(event.ChannelID, messageID, emoji); err != nil {
			return core.RespondEphemeral(session, event,
				"Could not react with that emoji. Check the message id and emoji, and that it is in this channel.")
		}
		if err := context.Store.SetReactionRole(event.GuildID, messageID, emoji, role.ID); err != nil {
			return err
		}
		return core.RespondEphemeral(session, event,
			fmt.Sprintf("Reacting with %s on that message now grants <@&%s>.", emoji, role.ID))

	case "remove":
		messageID := opts["message_id"].StringValue()
		emoji := strings.TrimSpace(opts["emoji"].StringValue())
		if err := context.Store.RemoveReactionRole(event.GuildID, messageID, emoji); err != nil {
			return err
		}
		return core.RespondEphemeral(session, event, "Binding removed.")

	case "list":
		bindings := context.Store.GuildReactionRoles(event.GuildID)
		if len(bindings) == 0 {
			return core.RespondEphemeral(session, event, "No reaction roles configured.")
		}

		messageIDs := make([]string, 0, len(bindings))
		for id := range bindings {
			messageIDs = append(messageIDs, id)
		}
		sort.Strings(messageIDs)

		var lines []string
		for _, messageID := range messageIDs {
			emojis := bindings[messageID]
			keys := make([]string, 0, len(emojis))
			for e := range emojis {
				keys = append(keys, e)
			}
			sort.Strings(keys)
			for _, e := range keys {
				lines = append(lines, fmt.Sprintf("message `%s`: %s → <@&%s>", messageID, e, emojis[e]))
			}
		}
		return core.RespondEmbed(session, event, &discordgo.MessageEmbed{
			Title:       "🎭 Reaction Roles",
			Description: strings.Join(lines, "\n"),
		})
	}
	return nil
}

func init() {
	core.RegisterCommand(&ReactionRoleCommand{})
}
