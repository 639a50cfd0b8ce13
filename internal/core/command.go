// Package core is the command framework: the Command interface, the
// registry, middleware and interaction helpers.
package core

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"toolybot/internal/storage"
)

type Command interface {
	Name() string
	Description() string
	Category() string
	RequireAdmin() bool
	RequireDev() bool
	Run(ctx interface{}) error
}

// SlashProvider - how this command should be registered with Discord
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Contexts - what runtime hands you when executing a command

// SlashContext is passed to a command run from a slash interaction.
type SlashContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Store   *storage.Store
	Log     zerolog.Logger
}

// ComponentContext is passed when a button or select menu fires.
type ComponentContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Store   *storage.Store
	Log     zerolog.Logger
}

// ComponentHandler is the hook for component interactions beyond Run.
type ComponentHandler interface {
	Component(*ComponentContext) error
}
