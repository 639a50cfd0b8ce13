package leveling

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
	"toolybot/internal/rank"
	"toolybot/internal/rewards"
)

type RankCommand struct{}

func (c *RankCommand) Name() string        { return "rank" }
func (c *RankCommand) Description() string { return "Show a member's level, XP and position" }
func (c *RankCommand) Category() string    { return "📈 Leveling" }
func (c *RankCommand) RequireAdmin() bool  { return false }
func (c *RankCommand) RequireDev() bool    { return false }

func (c *RankCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Whose rank to show (defaults to you)",
				Required:    false,
			},
		},
	}
}

func (c *RankCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	session, event := context.Session, context.Event

	user := event.Member.User
	if opt, ok := core.Options(event)["member"]; ok {
		user = opt.UserValue(session)
	}

	rec := context.Store.Level(event.GuildID, user.ID)
	position := rank.PositionOf(context.Store, event.GuildID, user.ID)

	positionLine := "unranked"
	if position > 0 {
		positionLine = fmt.Sprintf("#%d", position)
	}

	embed := &discordgo.MessageEmbed{
		Title: user.Username,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Level", Value: fmt.Sprintf("%d", rec.Level), Inline: true},
			{Name: "XP", Value: fmt.Sprintf("%d / %d", rec.XP, rewards.XPThreshold(rec.Level)), Inline: true},
			{Name: "Position", Value: positionLine, Inline: true},
		},
	}
	return core.RespondEmbed(session, event, embed)
}

func init() {
	core.RegisterCommand(&RankCommand{})
}
