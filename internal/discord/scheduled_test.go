package discord

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"toolybot/internal/storage"
)

// fakeEditor stands in for the session's message edit call.
type fakeEditor struct {
	calls int
	err   error
}

func (f *fakeEditor) edit(channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &discordgo.Message{ID: messageID, ChannelID: channelID}, nil
}

func newRefreshBot(t *testing.T, editor *fakeEditor) (*Bot, *storage.Store) {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "bot_data.json"), 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	_ = store.SetLevel("g1", "u1", storage.LevelRecord{Level: 3, XP: 10})
	if err := store.SetLeaderboard("g1", storage.LeaderboardPointer{ChannelID: "c1", MessageID: "m1"}); err != nil {
		t.Fatalf("set pointer: %v", err)
	}
	return &Bot{store: store, log: zerolog.Nop(), editEmbed: editor.edit}, store
}

func TestRefreshLeaderboardsEditsInPlace(t *testing.T) {
	editor := &fakeEditor{}
	b, store := newRefreshBot(t, editor)

	b.refreshLeaderboards()
	if editor.calls != 1 {
		t.Fatalf("edit calls = %d, want 1", editor.calls)
	}
	if _, ok := store.Leaderboard("g1"); !ok {
		t.Fatalf("pointer dropped after successful edit")
	}
}

func TestRefreshLeaderboardsDropsGonePointer(t *testing.T) {
	editor := &fakeEditor{err: &discordgo.RESTError{
		Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownMessage, Message: "Unknown Message"},
	}}
	b, store := newRefreshBot(t, editor)

	b.refreshLeaderboards()
	if editor.calls != 1 {
		t.Fatalf("edit calls = %d, want 1", editor.calls)
	}
	if _, ok := store.Leaderboard("g1"); ok {
		t.Fatalf("pointer to a deleted message survived the refresh")
	}

	// The next cycle has nothing left to edit.
	b.refreshLeaderboards()
	if editor.calls != 1 {
		t.Fatalf("dropped pointer was refreshed again: %d calls", editor.calls)
	}
}

func TestRefreshLeaderboardsKeepsPointerOnTransientError(t *testing.T) {
	editor := &fakeEditor{err: errors.New("timeout")}
	b, store := newRefreshBot(t, editor)

	b.refreshLeaderboards()
	if _, ok := store.Leaderboard("g1"); !ok {
		t.Fatalf("pointer dropped on a transient error")
	}
}
