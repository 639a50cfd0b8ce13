package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

const feedURLFormat = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

// FeedEntry is one upload from a channel's RSS feed.
type FeedEntry struct {
	VideoID   string
	Title     string
	Author    string
	Published time.Time
}

type feedXML struct {
	Entries []struct {
		VideoID   string `xml:"videoId"`
		Title     string `xml:"title"`
		Author    struct {
			Name string `xml:"name"`
		} `xml:"author"`
		Published string `xml:"published"`
	} `xml:"entry"`
}

// fetchLatest pulls the channel's RSS feed and returns its newest entry.
// A channel with no uploads yet returns (nil, nil).
func fetchLatest(ctx context.Context, client *http.Client, channelID string) (*FeedEntry, error) {
	url := fmt.Sprintf(feedURLFormat, channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	return parseFeed(body)
}

// parseFeed returns the newest entry of a channel RSS document, or nil when
// the channel has no uploads.
func parseFeed(body []byte) (*FeedEntry, error) {
	var feed feedXML
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if len(feed.Entries) == 0 {
		return nil, nil
	}

	// The feed lists newest first.
	raw := feed.Entries[0]
	entry := &FeedEntry{
		VideoID: raw.VideoID,
		Title:   raw.Title,
		Author:  raw.Author.Name,
	}
	if ts, err := time.Parse(time.RFC3339, raw.Published); err == nil {
		entry.Published = ts
	}
	return entry, nil
}

// WatchURL is the public link for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
