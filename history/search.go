package history

import (
	"context"
	"slices"
	"strings"

	"videobrowse-service/storage"

	"github.com/rs/zerolog"
)

const (
	SearchHistoryKey = "youtube-clone-search-history"
	MaxSearchTerms   = 15
)

// SearchHistory holds recent search terms. Terms are unique ignoring case.
type SearchHistory struct {
	list list[string]
}

var _ Store[string] = (*SearchHistory)(nil)

func NewSearchHistory(s storage.Storage, log zerolog.Logger) *SearchHistory {
	return &SearchHistory{list: list[string]{
		name:    "search",
		key:     SearchHistoryKey,
		storage: s,
		log:     log,
	}}
}

// Get returns the terms, most recent first.
func (h *SearchHistory) Get(ctx context.Context) []string {
	return h.list.load(ctx)
}

// Add moves term (trimmed) to the front, dropping any case-insensitive
// duplicate and anything past MaxSearchTerms. Blank terms are ignored.
func (h *SearchHistory) Add(ctx context.Context, term string) {
	t := strings.TrimSpace(term)
	if t == "" {
		return
	}
	h.list.count("add")
	h.list.update(ctx, func(items []string) []string {
		next := []string{t}
		for _, item := range items {
			if !strings.EqualFold(item, t) {
				next = append(next, item)
			}
		}
		if len(next) > MaxSearchTerms {
			next = next[:MaxSearchTerms]
		}
		return next
	})
}

// Remove drops every entry equal to term ignoring case.
// Removing the last entry deletes the key.
func (h *SearchHistory) Remove(ctx context.Context, term string) {
	t := strings.TrimSpace(term)
	if t == "" {
		return
	}
	h.list.count("remove")
	h.list.update(ctx, func(items []string) []string {
		return slices.DeleteFunc(items, func(item string) bool {
			return strings.EqualFold(item, t)
		})
	})
}

func (h *SearchHistory) Clear(ctx context.Context) {
	h.list.count("clear")
	h.list.reset(ctx)
}
