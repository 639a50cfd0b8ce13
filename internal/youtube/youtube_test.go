package youtube

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"toolybot/pkg/retrylimit"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns="http://www.w3.org/2005/Atom">
  <title>Uploads</title>
  <entry>
    <yt:videoId>newvid123</yt:videoId>
    <title>Latest Upload</title>
    <author><name>Some Creator</name></author>
    <published>2024-05-01T12:00:00+00:00</published>
  </entry>
  <entry>
    <yt:videoId>oldvid456</yt:videoId>
    <title>Older Upload</title>
    <author><name>Some Creator</name></author>
    <published>2024-04-01T12:00:00+00:00</published>
  </entry>
</feed>`

func TestParseFeedTakesNewestEntry(t *testing.T) {
	entry, err := parseFeed([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if entry.VideoID != "newvid123" || entry.Title != "Latest Upload" || entry.Author != "Some Creator" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Published.IsZero() {
		t.Fatalf("published not parsed")
	}
}

func TestParseFeedEmptyChannel(t *testing.T) {
	entry, err := parseFeed([]byte(`<?xml version="1.0"?><feed></feed>`))
	if err != nil || entry != nil {
		t.Fatalf("empty channel: entry=%v err=%v", entry, err)
	}
}

type fakeCursors struct {
	guilds  []string
	last    map[string]string
	enabled map[string]bool
}

func (f *fakeCursors) GuildIDs() []string          { return f.guilds }
func (f *fakeCursors) LastVideoID(g string) string { return f.last[g] }
func (f *fakeCursors) NotificationsEnabled(g string) bool {
	on, ok := f.enabled[g]
	return !ok || on
}
func (f *fakeCursors) SetLastVideoID(g, v string) error {
	f.last[g] = v
	return nil
}

func testWatcher(store Cursors, fetch func(context.Context) (*FeedEntry, error)) *Watcher {
	return &Watcher{
		store:   store,
		limiter: retrylimit.NewAdaptiveLimiter(100, 1, 100, 1, 0.5),
		log:     zerolog.Nop(),
		fetch:   fetch,
		lookup:  func(context.Context, string) time.Duration { return 3 * time.Minute },
	}
}

func TestPollAnnouncesNewUploadOnce(t *testing.T) {
	store := &fakeCursors{
		guilds:  []string{"g1", "g2"},
		last:    map[string]string{"g1": "oldvid456"},
		enabled: map[string]bool{},
	}
	w := testWatcher(store, func(context.Context) (*FeedEntry, error) {
		return &FeedEntry{VideoID: "newvid123", Title: "Latest Upload", Author: "Some Creator"}, nil
	})

	anns, err := w.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(anns) != 2 {
		t.Fatalf("announcements = %d, want 2", len(anns))
	}
	if anns[0].URL != "https://www.youtube.com/watch?v=newvid123" {
		t.Fatalf("url = %q", anns[0].URL)
	}
	if anns[0].Duration != 3*time.Minute {
		t.Fatalf("duration not enriched: %v", anns[0].Duration)
	}

	// Second poll of the same upload announces nothing.
	anns, err = w.Poll(context.Background())
	if err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if len(anns) != 0 {
		t.Fatalf("re-announced: %v", anns)
	}
}

func TestPollAdvancesCursorWhenNotificationsOff(t *testing.T) {
	store := &fakeCursors{
		guilds:  []string{"g1"},
		last:    map[string]string{},
		enabled: map[string]bool{"g1": false},
	}
	w := testWatcher(store, func(context.Context) (*FeedEntry, error) {
		return &FeedEntry{VideoID: "newvid123"}, nil
	})

	anns, err := w.Poll(context.Background())
	if err != nil || len(anns) != 0 {
		t.Fatalf("muted guild announced: %v err=%v", anns, err)
	}
	if store.last["g1"] != "newvid123" {
		t.Fatalf("cursor not advanced for muted guild")
	}
}

func TestPollPropagatesFetchFailure(t *testing.T) {
	store := &fakeCursors{guilds: []string{"g1"}, last: map[string]string{}}
	boom := errors.New("feed down")
	w := testWatcher(store, func(context.Context) (*FeedEntry, error) {
		return nil, &retrylimit.Permanent{Err: boom}
	})

	if _, err := w.Poll(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
