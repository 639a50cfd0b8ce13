package general

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
)

type PingCommand struct{}

func (c *PingCommand) Name() string        { return "ping" }
func (c *PingCommand) Description() string { return "Check whether the bot is alive" }
func (c *PingCommand) Category() string    { return "🛠️ General" }
func (c *PingCommand) RequireAdmin() bool  { return false }
func (c *PingCommand) RequireDev() bool    { return false }

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *PingCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	latency := context.Session.HeartbeatLatency().Milliseconds()
	return core.Respond(context.Session, context.Event, fmt.Sprintf("Pong! %dms", latency))
}

func init() {
	core.RegisterCommand(&PingCommand{})
}
