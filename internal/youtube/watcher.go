// Package youtube watches a channel for new uploads and hands announcements
// to the bot. Detection runs off the channel's public RSS feed; the player
// API only fills in metadata the feed does not carry.
package youtube

import (
	"context"
	"net/http"
	"time"

	kkdai "github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog"

	"toolybot/pkg/retrylimit"
)

// Cursors is the slice of the record store the watcher needs.
type Cursors interface {
	GuildIDs() []string
	LastVideoID(guildID string) string
	SetLastVideoID(guildID, videoID string) error
	NotificationsEnabled(guildID string) bool
}

// Announcement describes a new upload for one guild.
type Announcement struct {
	GuildID  string
	VideoID  string
	Title    string
	Author   string
	URL      string
	Duration time.Duration
}

// Watcher polls one channel's feed and reports uploads each guild has not
// seen yet.
type Watcher struct {
	channelID string
	store     Cursors
	limiter   *retrylimit.AdaptiveLimiter
	log       zerolog.Logger

	fetch  func(ctx context.Context) (*FeedEntry, error)
	lookup func(ctx context.Context, videoID string) time.Duration
}

// NewWatcher builds a watcher for the given channel id.
func NewWatcher(channelID string, store Cursors, log zerolog.Logger) *Watcher {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	videoClient := &kkdai.Client{HTTPClient: httpClient}
	logger := log.With().Str("component", "youtube").Logger()

	return &Watcher{
		channelID: channelID,
		store:     store,
		limiter:   retrylimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5),
		log:       logger,
		fetch: func(ctx context.Context) (*FeedEntry, error) {
			return fetchLatest(ctx, httpClient, channelID)
		},
		lookup: func(ctx context.Context, videoID string) time.Duration {
			video, err := videoClient.GetVideoContext(ctx, videoID)
			if err != nil {
				logger.Debug().Err(err).Str("video", videoID).Msg("metadata lookup failed")
				return 0
			}
			return video.Duration
		},
	}
}

// Poll fetches the latest upload and returns one announcement per guild that
// has notifications on and has not seen it. Cursors advance even for guilds
// with notifications off, so re-enabling does not replay old uploads.
func (w *Watcher) Poll(ctx context.Context) ([]Announcement, error) {
	var latest *FeedEntry
	err := retrylimit.Do(ctx, w.limiter, func() error {
		var ferr error
		latest, ferr = w.fetch(ctx)
		return ferr
	}, retrylimit.Options{
		MaxAttempts: 3,
		OnRetry: func(attempt int, err error) {
			w.log.Warn().Err(err).Int("attempt", attempt).Msg("feed fetch failed")
		},
	})
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}

	var pending []string
	for _, guildID := range w.store.GuildIDs() {
		if w.store.LastVideoID(guildID) == latest.VideoID {
			continue
		}
		if !w.store.NotificationsEnabled(guildID) {
			if err := w.store.SetLastVideoID(guildID, latest.VideoID); err != nil {
				w.log.Error().Err(err).Str("guild", guildID).Msg("advance cursor")
			}
			continue
		}
		pending = append(pending, guildID)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	duration := w.lookup(ctx, latest.VideoID)

	out := make([]Announcement, 0, len(pending))
	for _, guildID := range pending {
		if err := w.store.SetLastVideoID(guildID, latest.VideoID); err != nil {
			w.log.Error().Err(err).Str("guild", guildID).Msg("advance cursor")
			continue
		}
		out = append(out, Announcement{
			GuildID:  guildID,
			VideoID:  latest.VideoID,
			Title:    latest.Title,
			Author:   latest.Author,
			URL:      WatchURL(latest.VideoID),
			Duration: duration,
		})
	}
	return out, nil
}
