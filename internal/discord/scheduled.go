package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/commands/notifications"
	"toolybot/internal/config"
	"toolybot/internal/core"
	"toolybot/internal/rank"
	"toolybot/internal/youtube"
)

// startJobs launches the scheduled loops: the hourly leaderboard refresh
// and, when configured, the upload poller.
func (b *Bot) startJobs(ctx context.Context) {
	_ = b.jobs.Start(ctx, "leaderboard-refresh", func(ctx context.Context) error {
		ticker := time.NewTicker(config.LeaderboardUpdateInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				b.refreshLeaderboards()
			}
		}
	})

	if b.watcher == nil {
		return
	}

	notifications.PollNow = func(ctx context.Context) (int, error) {
		anns, err := b.watcher.Poll(ctx)
		if err != nil {
			return 0, err
		}
		b.deliverAnnouncements(anns)
		return len(anns), nil
	}

	_ = b.jobs.Start(ctx, "upload-poll", func(ctx context.Context) error {
		ticker := time.NewTicker(config.VideoCheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				// A poll still in flight means we just skip this tick.
				anns, err := b.watcher.Poll(ctx)
				if err != nil {
					b.log.Warn().Err(err).Msg("upload poll failed")
					continue
				}
				b.deliverAnnouncements(anns)
			}
		}
	})
}

// refreshLeaderboards re-renders every guild's pinned leaderboard. Pointers
// to deleted messages or channels are dropped so the next /setleaderboard
// starts clean.
func (b *Bot) refreshLeaderboards() {
	for guildID, ptr := range b.store.Leaderboards() {
		entries := rank.TopN(b.store, guildID, config.LeaderboardSize)
		embed := &discordgo.MessageEmbed{
			Title:       "🏆 Leaderboard",
			Description: rank.Render(entries),
			Color:       core.EmbedColor,
			Footer:      &discordgo.MessageEmbedFooter{Text: "Updated " + time.Now().UTC().Format("15:04 MST")},
		}

		_, err := b.editEmbed(ptr.ChannelID, ptr.MessageID, embed)
		if err == nil {
			continue
		}
		if isGoneError(err) {
			b.log.Info().Str("guild", guildID).Msg("leaderboard message is gone, dropping pointer")
			if cerr := b.store.ClearLeaderboard(guildID); cerr != nil {
				b.log.Error().Err(cerr).Str("guild", guildID).Msg("drop leaderboard pointer")
			}
			continue
		}
		b.log.Warn().Err(err).Str("guild", guildID).Msg("leaderboard refresh failed")
	}
}

// isGoneError reports whether a REST error means the target message or
// channel no longer exists.
func isGoneError(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return false
	}
	code := restErr.Message.Code
	return code == discordgo.ErrCodeUnknownMessage || code == discordgo.ErrCodeUnknownChannel
}

// deliverAnnouncements posts upload announcements to each guild's
// notification channel.
func (b *Bot) deliverAnnouncements(anns []youtube.Announcement) {
	for _, ann := range anns {
		channelID := b.notificationChannel(ann.GuildID)
		if channelID == "" {
			continue
		}

		content := fmt.Sprintf("📺 New upload from **%s**!\n**%s**\n%s", ann.Author, ann.Title, ann.URL)
		if ann.Duration > 0 {
			content = fmt.Sprintf("📺 New upload from **%s**!\n**%s** (%s)\n%s",
				ann.Author, ann.Title, ann.Duration.Round(time.Second), ann.URL)
		}
		if _, err := b.session.ChannelMessageSend(channelID, content); err != nil {
			b.log.Warn().Err(err).Str("guild", ann.GuildID).Str("channel", channelID).Msg("announcement send failed")
		}
	}
}

// notificationChannel resolves where a guild wants upload announcements: a
// per-guild setting first, then the global default.
func (b *Bot) notificationChannel(guildID string) string {
	if v, ok := b.store.Setting(guildID, "notification_channel_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return b.cfg.NotificationChannelID
}
