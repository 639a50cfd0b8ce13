package leveling

import (
	"github.com/bwmarrin/discordgo"

	"toolybot/internal/config"
	"toolybot/internal/core"
	"toolybot/internal/rank"
)

type LeaderboardCommand struct{}

func (c *LeaderboardCommand) Name() string        { return "leaderboard" }
func (c *LeaderboardCommand) Description() string { return "Show the top members by level" }
func (c *LeaderboardCommand) Category() string    { return "📈 Leveling" }
func (c *LeaderboardCommand) RequireAdmin() bool  { return false }
func (c *LeaderboardCommand) RequireDev() bool    { return false }

func (c *LeaderboardCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *LeaderboardCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	entries := rank.TopN(context.Store, context.Event.GuildID, config.LeaderboardSize)
	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Leaderboard",
		Description: rank.Render(entries),
	}
	return core.RespondEmbed(context.Session, context.Event, embed)
}

func init() {
	core.RegisterCommand(&LeaderboardCommand{})
}
