package leveling

import (
	"github.com/bwmarrin/discordgo"

	"toolybot/internal/config"
	"toolybot/internal/core"
	"toolybot/internal/rank"
	"toolybot/internal/storage"
)

type SetLeaderboardCommand struct{}

func (c *SetLeaderboardCommand) Name() string { return "setleaderboard" }
func (c *SetLeaderboardCommand) Description() string {
	return "Post an auto-updating leaderboard in this channel"
}
func (c *SetLeaderboardCommand) Category() string   { return "📈 Leveling" }
func (c *SetLeaderboardCommand) RequireAdmin() bool { return true }
func (c *SetLeaderboardCommand) RequireDev() bool   { return false }

func (c *SetLeaderboardCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *SetLeaderboardCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event

	// Drop the previous pinned leaderboard, if any.
	if old, ok := context.Store.Leaderboard(event.GuildID); ok {
		_ = session.ChannelMessageDelete(old.ChannelID, old.MessageID)
	}

	entries := rank.TopN(context.Store, event.GuildID, config.LeaderboardSize)
	msg, err := session.ChannelMessageSendEmbed(event.ChannelID, &discordgo.MessageEmbed{
		Title:       "🏆 Leaderboard",
		Description: rank.Render(entries),
		Color:       core.EmbedColor,
	})
	if err != nil {
		return core.RespondEphemeral(session, event, "Could not post the leaderboard: "+err.Error())
	}

	err = context.Store.SetLeaderboard(event.GuildID, storage.LeaderboardPointer{
		ChannelID: event.ChannelID,
		MessageID: msg.ID,
	})
	if err != nil {
		return core.RespondEphemeral(session, event, "Posted, but failed to save the pointer: "+err.Error())
	}
	return core.RespondEphemeral(session, event, "Leaderboard posted. It will refresh every hour.")
}

func init() {
	core.RegisterCommand(&SetLeaderboardCommand{})
}
