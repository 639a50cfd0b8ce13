package core

import (
	"github.com/bwmarrin/discordgo"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return w.Command.Run(ctx)
}

func (w *wrappedCommand) Component(ctx *ComponentContext) error {
	if ch, ok := w.Command.(ComponentHandler); ok {
		return ch.Component(ctx)
	}
	return nil
}

func (w *wrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

// ApplyMiddlewares wraps a command, innermost first.
func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}

// WithGuildOnly drops invocations that arrive outside a guild (DMs).
func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashContext); ok && v.Event.GuildID == "" {
					return RespondEphemeral(v.Session, v.Event, "This command only works inside a server.")
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithAccessGuard enforces RequireAdmin and RequireDev before the command
// runs. The developer id bypasses the admin check.
func WithAccessGuard(developerID string) Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				v, ok := ctx.(*SlashContext)
				if !ok {
					return cmd.Run(ctx)
				}

				if cmd.RequireDev() && v.Event.Member.User.ID != developerID {
					return RespondEphemeral(v.Session, v.Event, "This command is restricted to the bot developer.")
				}
				if cmd.RequireAdmin() &&
					v.Event.Member.User.ID != developerID &&
					!IsAdministrator(v.Session, v.Event.GuildID, v.Event.Member) {
					return RespondEphemeral(v.Session, v.Event, "You need administrator permissions for that.")
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithCommandLogger logs every invocation with the caller and guild.
func WithCommandLogger() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				err := cmd.Run(ctx)

				if v, ok := ctx.(*SlashContext); ok {
					evt := v.Log.Info()
					if err != nil {
						evt = v.Log.Error().Err(err)
					}
					evt.Str("command", cmd.Name()).
						Str("guild", v.Event.GuildID).
						Str("user", v.Event.Member.User.ID).
						Msg("command executed")
				}
				return err
			},
		}
	}
}
