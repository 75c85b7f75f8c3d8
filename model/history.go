package model

// WatchEntry is a single watch history record.
// Timestamps are ISO-8601 strings so entries written by any client round-trip untouched.
type WatchEntry struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	ThumbnailURL string `json:"thumbnailUrl"`
	PublishedAt  string `json:"publishedAt"`
	WatchedAt    string `json:"watchedAt"`
}
