package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/core"
)

// onInteractionCreate dispatches slash and component interactions through
// the middleware pipeline.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		cmd, ok := b.pipeline[name]
		if !ok {
			b.log.Warn().Str("command", name).Msg("unknown command")
			return
		}

		ctx := &core.SlashContext{
			Session: s,
			Event:   i,
			Store:   b.store,
			Log:     b.log,
		}
		if err := cmd.Run(ctx); err != nil {
			b.log.Error().Err(err).Str("command", name).Msg("command failed")
			_ = core.RespondEphemeral(s, i, "Something went wrong running that command.")
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		for name, cmd := range b.pipeline {
			if customID != name && !strings.HasPrefix(customID, name+":") {
				continue
			}
			handler, ok := cmd.(core.ComponentHandler)
			if !ok {
				return
			}
			ctx := &core.ComponentContext{
				Session: s,
				Event:   i,
				Store:   b.store,
				Log:     b.log,
			}
			if err := handler.Component(ctx); err != nil {
				b.log.Error().Err(err).Str("component", customID).Msg("component failed")
			}
			return
		}
		b.log.Warn().Str("component", customID).Msg("no handler for component")
	}
}
