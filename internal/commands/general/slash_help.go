package general

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
	"toolybot/internal/version"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List every command, grouped by category" }
func (c *HelpCommand) Category() string    { return "🛠️ General" }
func (c *HelpCommand) RequireAdmin() bool  { return false }
func (c *HelpCommand) RequireDev() bool    { return false }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	byCategory := map[string][]core.Command{}
	for _, cmd := range core.AllCommands() {
		byCategory[cmd.Category()] = append(byCategory[cmd.Category()], cmd)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	embed := &discordgo.MessageEmbed{
		Title: version.AppName + " Commands",
	}
	for _, cat := range categories {
		var lines []string
		for _, cmd := range byCategory[cat] {
			suffix := ""
			if cmd.RequireAdmin() {
				suffix = " (admin)"
			}
			lines = append(lines, fmt.Sprintf("`/%s` — %s%s", cmd.Name(), cmd.Description(), suffix))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  cat,
			Value: strings.Join(lines, "\n"),
		})
	}

	return core.RespondEmbed(context.Session, context.Event, embed)
}

func init() {
	core.RegisterCommand(&HelpCommand{})
}
