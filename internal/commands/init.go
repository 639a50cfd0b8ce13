// Package commands pulls in every command package so their init()
// registrations run.
package commands

import (
	_ "toolybot/internal/commands/economy"
	_ "toolybot/internal/commands/general"
	_ "toolybot/internal/commands/leveling"
	_ "toolybot/internal/commands/moderation"
	_ "toolybot/internal/commands/notifications"
	_ "toolybot/internal/commands/reactionroles"
	_ "toolybot/internal/commands/shop"
)
