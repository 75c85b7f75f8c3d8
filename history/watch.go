package history

import (
	"context"
	"slices"
	"time"

	"videobrowse-service/model"
	"videobrowse-service/storage"

	"github.com/rs/zerolog"
)

const (
	WatchHistoryKey = "youtube-clone-watch-history"
	MaxWatchEntries = 100

	// ISO-8601 with milliseconds in UTC, the format browsers write.
	timestampLayout = "2006-01-02T15:04:05.000Z"
)

// WatchHistory holds recently watched videos, at most one entry per video.
type WatchHistory struct {
	list list[model.WatchEntry]
	now  func() time.Time
}

var _ Store[model.WatchEntry] = (*WatchHistory)(nil)

func NewWatchHistory(s storage.Storage, log zerolog.Logger) *WatchHistory {
	return &WatchHistory{
		list: list[model.WatchEntry]{
			name:    "watch",
			key:     WatchHistoryKey,
			storage: s,
			log:     log,
		},
		now: time.Now,
	}
}

// WithClock replaces the time source used for WatchedAt and PublishedAt defaults.
func (h *WatchHistory) WithClock(now func() time.Time) *WatchHistory {
	h.now = now
	return h
}

// Get returns the entries, most recently watched first.
func (h *WatchHistory) Get(ctx context.Context) []model.WatchEntry {
	return h.list.load(ctx)
}

// Add records a view of entry.VideoID. A previous entry for the same video is
// replaced and the new one goes to the front with WatchedAt set to now.
// Entries without a VideoID or Title are ignored.
func (h *WatchHistory) Add(ctx context.Context, entry model.WatchEntry) {
	if entry.VideoID == "" || entry.Title == "" {
		return
	}
	h.list.count("add")
	stamp := h.now().UTC().Format(timestampLayout)
	item := model.WatchEntry{
		VideoID:      entry.VideoID,
		Title:        entry.Title,
		ChannelTitle: entry.ChannelTitle,
		ThumbnailURL: entry.ThumbnailURL,
		PublishedAt:  entry.PublishedAt,
		WatchedAt:    stamp,
	}
	if item.PublishedAt == "" {
		item.PublishedAt = stamp
	}

	h.list.update(ctx, func(entries []model.WatchEntry) []model.WatchEntry {
		next := []model.WatchEntry{item}
		for _, e := range entries {
			if e.VideoID != entry.VideoID {
				next = append(next, e)
			}
		}
		if len(next) > MaxWatchEntries {
			next = next[:MaxWatchEntries]
		}
		return next
	})
}

// Remove drops the entry for videoID. Removing the last entry deletes the key.
func (h *WatchHistory) Remove(ctx context.Context, videoID string) {
	if videoID == "" {
		return
	}
	h.list.count("remove")
	h.list.update(ctx, func(entries []model.WatchEntry) []model.WatchEntry {
		return slices.DeleteFunc(entries, func(e model.WatchEntry) bool {
			return e.VideoID == videoID
		})
	})
}

func (h *WatchHistory) Clear(ctx context.Context) {
	h.list.count("clear")
	h.list.reset(ctx)
}

// ToVideoSummary reshapes an entry so it can be rendered like any other video
// card. The stored thumbnail is repeated for every size. Returns nil for an
// entry without a VideoID.
func ToVideoSummary(entry model.WatchEntry) *model.VideoSummary {
	if entry.VideoID == "" {
		return nil
	}
	return &model.VideoSummary{
		ID: model.VideoID{VideoID: entry.VideoID},
		Snippet: model.Snippet{
			Title:        entry.Title,
			ChannelTitle: entry.ChannelTitle,
			PublishedAt:  entry.PublishedAt,
			Thumbnails: model.Thumbnails{
				Default: &model.Thumbnail{URL: entry.ThumbnailURL},
				Medium:  &model.Thumbnail{URL: entry.ThumbnailURL},
				High:    &model.Thumbnail{URL: entry.ThumbnailURL},
			},
		},
	}
}

// EntryFromDetails builds the history entry recorded when a video is opened.
func EntryFromDetails(d *model.VideoDetails) model.WatchEntry {
	return model.WatchEntry{
		VideoID:      d.ID.VideoID,
		Title:        d.Snippet.Title,
		ChannelTitle: d.Snippet.ChannelTitle,
		ThumbnailURL: d.Snippet.Thumbnails.Best(),
		PublishedAt:  d.Snippet.PublishedAt,
	}
}
