package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"toolybot/internal/rewards"
)

// onReady syncs slash commands for every guild the bot sits in.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		if err := b.syncCommands(g.ID); err != nil {
			b.log.Error().Err(err).Str("guild", g.ID).Msg("slash command sync failed")
		}
	}
	b.log.Info().Str("user", s.State.User.Username).Int("guilds", len(r.Guilds)).Msg("gateway ready")
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.log.Info().Str("guild", g.ID).Str("name", g.Name).Msg("joined guild")
	if err := b.syncCommands(g.ID); err != nil {
		b.log.Error().Err(err).Str("guild", g.ID).Msg("slash command sync failed")
	}
}

// onMessageCreate runs the automod filter, then awards message XP.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	if reason, flagged := b.filter.Check(m.Content); flagged {
		if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
			b.log.Warn().Err(err).Str("channel", m.ChannelID).Msg("automod delete failed")
			return
		}
		b.log.Info().
			Str("guild", m.GuildID).
			Str("user", m.Author.ID).
			Str("reason", reason).
			Msg("message removed by automod")
		_, _ = s.ChannelMessageSend(m.ChannelID,
			fmt.Sprintf("<@%s>, that message is not allowed here.", m.Author.ID))
		return
	}

	b.awardMessageXP(s, m)
}

func (b *Bot) awardMessageXP(s *discordgo.Session, m *discordgo.MessageCreate) {
	rec := b.store.Level(m.GuildID, m.Author.ID)
	updated, res, ok := rewards.ApplyXP(rec, time.Now(), rewards.NewRoller())
	if !ok {
		return
	}
	if err := b.store.SetLevel(m.GuildID, m.Author.ID, updated); err != nil {
		b.log.Error().Err(err).Str("guild", m.GuildID).Msg("save level record")
		return
	}
	if !res.LeveledUp {
		return
	}

	if _, err := b.store.AddCoins(m.GuildID, m.Author.ID, res.CoinBonus); err != nil {
		b.log.Error().Err(err).Str("guild", m.GuildID).Msg("level-up coin grant")
	}
	_, _ = s.ChannelMessageSend(m.ChannelID, fmt.Sprintf(
		"🎉 <@%s> reached **level %d** and earned **%d** coins!",
		m.Author.ID, res.NewLevel, res.CoinBonus))
}

// onGuildMemberAdd greets new members over DM.
func (b *Bot) onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.User == nil || m.User.Bot || b.cfg.WelcomeMessage == "" {
		return
	}
	channel, err := s.UserChannelCreate(m.User.ID)
	if err != nil {
		b.log.Debug().Err(err).Str("user", m.User.ID).Msg("welcome DM channel")
		return
	}
	if _, err := s.ChannelMessageSend(channel.ID, b.cfg.WelcomeMessage); err != nil {
		b.log.Debug().Err(err).Str("user", m.User.ID).Msg("welcome DM send")
	}
}

// onMessageReactionAdd grants the role bound to the reaction, if any.
func (b *Bot) onMessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID {
		return
	}
	roleID, ok := b.store.ReactionRole(r.GuildID, r.MessageID, r.Emoji.Name)
	if !ok {
		return
	}
	if err := s.GuildMemberRoleAdd(r.GuildID, r.UserID, roleID); err != nil {
		b.log.Warn().Err(err).Str("role", roleID).Str("user", r.UserID).Msg("reaction role grant failed")
	}
}

// onMessageReactionRemove revokes the bound role again.
func (b *Bot) onMessageReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	if r.UserID == s.State.User.ID {
		return
	}
	roleID, ok := b.store.ReactionRole(r.GuildID, r.MessageID, r.Emoji.Name)
	if !ok {
		return
	}
	if err := s.GuildMemberRoleRemove(r.GuildID, r.UserID, roleID); err != nil {
		b.log.Warn().Err(err).Str("role", roleID).Str("user", r.UserID).Msg("reaction role revoke failed")
	}
}
