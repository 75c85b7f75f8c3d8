// Package history keeps the bounded, deduplicated, most-recent-first lists of
// search terms and watched videos.
//
// The stores never return errors. Any storage failure (unreachable backend,
// full quota, corrupt payload) is logged, counted, and otherwise treated as an
// empty list or a no-op.
package history

import (
	"context"
	"encoding/json"

	"videobrowse-service/metrics"
	"videobrowse-service/storage"

	"github.com/rs/zerolog"
)

// Store is the capability set shared by both history lists.
type Store[T any] interface {
	Get(ctx context.Context) []T
	Add(ctx context.Context, item T)
	Remove(ctx context.Context, key string)
	Clear(ctx context.Context)
}

// list is the JSON-array-under-one-key persistence both stores share.
type list[T any] struct {
	name    string
	key     string
	storage storage.Storage
	log     zerolog.Logger
}

func (l list[T]) load(ctx context.Context) []T {
	raw, ok, err := l.storage.GetItem(ctx, l.key)
	if err != nil {
		l.fail("read", err)
		return []T{}
	}
	if !ok || raw == "" {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		l.fail("decode", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// save writes items, deleting the key instead of storing an empty array.
func (l list[T]) save(ctx context.Context, items []T) {
	if len(items) == 0 {
		l.clear(ctx)
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		l.fail("encode", err)
		return
	}
	if err := l.storage.SetItem(ctx, l.key, string(data)); err != nil {
		l.fail("write", err)
	}
}

// update applies fn to the stored list and saves the result while holding
// the key's lock, so concurrent requests of one session cannot drop writes.
func (l list[T]) update(ctx context.Context, fn func([]T) []T) {
	unlock := storage.Lock(l.storage, l.key)
	defer unlock()
	l.save(ctx, fn(l.load(ctx)))
}

func (l list[T]) reset(ctx context.Context) {
	unlock := storage.Lock(l.storage, l.key)
	defer unlock()
	l.clear(ctx)
}

func (l list[T]) clear(ctx context.Context) {
	if err := l.storage.RemoveItem(ctx, l.key); err != nil {
		l.fail("remove", err)
	}
}

func (l list[T]) count(op string) {
	metrics.HistoryOperationsTotal.WithLabelValues(l.name, op).Inc()
}

func (l list[T]) fail(op string, err error) {
	metrics.StorageFailuresTotal.WithLabelValues(l.name, op).Inc()
	l.log.Warn().Err(err).Str("store", l.name).Str("op", op).Msg("storage failure swallowed")
}
