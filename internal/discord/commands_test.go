package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestHashCommandIsStable(t *testing.T) {
	def := func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "warn",
			Description: "Manage member warnings",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "who", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "why", Required: true},
			},
		}
	}

	if hashCommand(def()) != hashCommand(def()) {
		t.Fatalf("identical definitions hash differently")
	}

	// Option order must not matter; Discord returns them in its own order.
	reordered := def()
	reordered.Options[0], reordered.Options[1] = reordered.Options[1], reordered.Options[0]
	if hashCommand(def()) != hashCommand(reordered) {
		t.Fatalf("option order changed the hash")
	}

	changed := def()
	changed.Description = "something else"
	if hashCommand(def()) == hashCommand(changed) {
		t.Fatalf("changed description kept the same hash")
	}

	// Runtime-only fields are ignored.
	withID := def()
	withID.ID = "123456"
	withID.Version = "9"
	if hashCommand(def()) != hashCommand(withID) {
		t.Fatalf("runtime fields changed the hash")
	}
}
