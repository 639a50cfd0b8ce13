package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	_ "toolybot/internal/commands"
	"toolybot/internal/config"
	"toolybot/internal/dashboard"
	"toolybot/internal/discord"
	"toolybot/internal/logutil"
	"toolybot/internal/storage"
	"toolybot/internal/version"
	"toolybot/internal/youtube"
)

// sessionSender adapts the gateway session to the dashboard's Sender.
type sessionSender struct {
	session *discordgo.Session
}

func (s *sessionSender) SendMessage(channelID, content string) error {
	_, err := s.session.ChannelMessageSend(channelID, content)
	return err
}

func main() {
	cfg, err := config.New()
	if err != nil {
		bootLog := logutil.Setup("info", "")
		bootLog.Fatal().Err(err).Msg("configuration")
	}

	log := logutil.Setup(cfg.LogLevel, cfg.LogFile)
	log.Info().Str("version", version.Version).Msgf("starting %s", version.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(cfg.StoragePath, cfg.BackupCount, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open record store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("final flush")
		}
	}()

	var watcher *youtube.Watcher
	if cfg.YouTubeChannelID != "" {
		watcher = youtube.NewWatcher(cfg.YouTubeChannelID, store, log)
	} else {
		log.Info().Msg("no YouTube channel configured, upload poller disabled")
	}

	bot, err := discord.New(cfg, store, watcher, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build bot")
	}

	web := dashboard.New(cfg, store, &sessionSender{session: bot.Session()}, log)

	errCh := make(chan error, 2)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
	}()
	go func() {
		if err := web.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
	case err := <-errCh:
		log.Error().Err(err).Msg("component failed")
	}
	cancel()

	log.Info().Msg("bye")
}
