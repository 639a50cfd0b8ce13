// Package discord hosts the gateway session: event handlers, slash command
// sync and the scheduled loops.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"toolybot/internal/automod"
	"toolybot/internal/config"
	"toolybot/internal/core"
	"toolybot/internal/storage"
	"toolybot/internal/youtube"
	"toolybot/pkg/jobmgr"
)

// Bot is the Discord side of the application.
type Bot struct {
	session  *discordgo.Session
	store    *storage.Store
	cfg      *config.Config
	log      zerolog.Logger
	watcher  *youtube.Watcher
	filter   *automod.Filter
	jobs     *jobmgr.Manager
	pipeline map[string]core.Command

	// editEmbed edits a posted message in place. A func field so the
	// leaderboard refresh can run against a fake session in tests.
	editEmbed func(channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

// New builds the bot and its session. The watcher may be nil when no YouTube
// channel is configured.
func New(cfg *config.Config, store *storage.Store, watcher *youtube.Watcher, log zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	logger := log.With().Str("component", "discord").Logger()
	b := &Bot{
		session: session,
		store:   store,
		cfg:     cfg,
		log:     logger,
		watcher: watcher,
		filter:  automod.New(cfg.AutomodTerms, cfg.AutomodBlockInvites),
		jobs: jobmgr.NewManager(func(ev jobmgr.Event) {
			evt := logger.Info()
			if ev.Err != nil {
				evt = logger.Error().Err(ev.Err)
			}
			evt.Str("job", ev.Job).Str("state", ev.State).Msg("background job")
		}),
		pipeline:  make(map[string]core.Command),
		editEmbed: func(channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
			return session.ChannelMessageEditEmbed(channelID, messageID, embed)
		},
	}

	for _, cmd := range core.AllCommands() {
		b.pipeline[cmd.Name()] = core.ApplyMiddlewares(cmd,
			core.WithCommandLogger(),
			core.WithAccessGuard(cfg.DeveloperID),
			core.WithGuildOnly(),
		)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent

	session.AddHandler(b.onReady)
	session.AddHandler(b.onGuildCreate)
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onGuildMemberAdd)
	session.AddHandler(b.onMessageReactionAdd)
	session.AddHandler(b.onMessageReactionRemove)
	session.AddHandler(b.onInteractionCreate)

	return b, nil
}

// Session exposes the gateway session for other components, like the
// dashboard's announcement relay.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Run opens the gateway and blocks until ctx ends.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	defer b.session.Close()

	b.startJobs(ctx)
	defer b.jobs.StopAll()

	<-ctx.Done()
	b.log.Info().Msg("shutdown signal received")
	return nil
}
