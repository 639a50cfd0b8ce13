// Package dashboard exposes the bot's records over HTTP: read-only stats
// and leaderboards, guild settings, and a guarded announcement relay.
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"toolybot/internal/config"
	"toolybot/internal/rank"
	"toolybot/internal/storage"
	"toolybot/internal/version"
)

// Sender posts messages to Discord on the dashboard's behalf.
type Sender interface {
	SendMessage(channelID, content string) error
}

// Server is the HTTP dashboard.
type Server struct {
	cfg    *config.Config
	store  *storage.Store
	sender Sender
	log    zerolog.Logger
	engine *gin.Engine
}

// New builds the server and its routes.
func New(cfg *config.Config, store *storage.Store, sender Sender, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:    cfg,
		store:  store,
		sender: sender,
		log:    log.With().Str("component", "dashboard").Logger(),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())

	engine.GET("/health", s.health)

	api := engine.Group("/api")
	{
		api.GET("/stats", s.stats)
		api.GET("/guilds/:guild_id/leaderboard", s.leaderboard)
		api.GET("/guilds/:guild_id/users/:user_id", s.user)
		api.GET("/guilds/:guild_id/settings", s.getSettings)
		api.PUT("/guilds/:guild_id/settings", s.putSettings)
		api.POST("/announce", s.announce)
	}

	s.engine = engine
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.DashboardAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info().Str("addr", s.cfg.DashboardAddr).Msg("dashboard listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    version.AppName,
		"version": version.Version,
	})
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Totals())
}

type leaderboardRow struct {
	Position   int    `json:"position"`
	UserID     string `json:"user_id"`
	Level      int    `json:"level"`
	XP         int    `json:"xp"`
	TotalCoins int    `json:"total_coins"`
}

func (s *Server) leaderboard(c *gin.Context) {
	guildID := c.Param("guild_id")

	entries := rank.TopN(s.store, guildID, config.LeaderboardSize)
	rows := make([]leaderboardRow, len(entries))
	for i, e := range entries {
		rows[i] = leaderboardRow{
			Position:   i + 1,
			UserID:     e.UserID,
			Level:      e.Level,
			XP:         e.XP,
			TotalCoins: e.TotalCoins,
		}
	}
	c.JSON(http.StatusOK, gin.H{"guild_id": guildID, "entries": rows})
}

func (s *Server) user(c *gin.Context) {
	guildID, userID := c.Param("guild_id"), c.Param("user_id")

	level := s.store.Level(guildID, userID)
	economy := s.store.Economy(guildID, userID)
	c.JSON(http.StatusOK, gin.H{
		"guild_id": guildID,
		"user_id":  userID,
		"level":    level.Level,
		"xp":       level.XP,
		"coins":    economy.Coins,
		"bank":     economy.Bank,
		"warnings": len(s.store.Warnings(guildID, userID)),
		"position": rank.PositionOf(s.store, guildID, userID),
	})
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.GuildSettings(c.Param("guild_id")))
}

func (s *Server) putSettings(c *gin.Context) {
	guildID := c.Param("guild_id")

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON object"})
		return
	}

	for key, value := range body {
		if err := s.store.SetSetting(guildID, key, value); err != nil {
			s.log.Error().Err(err).Str("guild", guildID).Str("key", key).Msg("save setting")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
			return
		}
	}
	c.JSON(http.StatusOK, s.store.GuildSettings(guildID))
}

type announceRequest struct {
	ChannelID string `json:"channel_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// announce relays a message to Discord. Only channels on the configured
// allow-list are accepted.
func (s *Server) announce(c *gin.Context) {
	var req announceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel_id and message are required"})
		return
	}

	if !s.channelAllowed(req.ChannelID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "channel is not on the allow-list"})
		return
	}
	if s.sender == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "bot is not connected"})
		return
	}

	if err := s.sender.SendMessage(req.ChannelID, req.Message); err != nil {
		s.log.Error().Err(err).Str("channel", req.ChannelID).Msg("announce relay failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "message could not be delivered"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func (s *Server) channelAllowed(channelID string) bool {
	for _, id := range s.cfg.AnnounceChannelIDs {
		if id == channelID {
			return true
		}
	}
	return false
}
