package history

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"videobrowse-service/errs"
	"videobrowse-service/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStorage fails every call, like disabled browser storage.
type brokenStorage struct{}

func (brokenStorage) GetItem(context.Context, string) (string, bool, error) {
	return "", false, errs.ErrStorageUnavailable
}

func (brokenStorage) SetItem(context.Context, string, string) error {
	return errs.ErrStorageUnavailable
}

func (brokenStorage) RemoveItem(context.Context, string) error {
	return errs.ErrStorageUnavailable
}

func newSearch(t *testing.T) (*SearchHistory, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	return NewSearchHistory(mem, zerolog.Nop()), mem
}

func TestSearchHistoryMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	h, _ := newSearch(t)

	h.Add(ctx, "golang")
	h.Add(ctx, "rust")
	assert.Equal(t, []string{"rust", "golang"}, h.Get(ctx))
}

func TestSearchHistoryDedupIgnoresCase(t *testing.T) {
	ctx := context.Background()
	h, _ := newSearch(t)

	h.Add(ctx, "Go Tutorial")
	h.Add(ctx, "music")
	h.Add(ctx, "  go tutorial ")
	assert.Equal(t, []string{"go tutorial", "music"}, h.Get(ctx))
}

func TestSearchHistoryBlankTermIgnored(t *testing.T) {
	ctx := context.Background()
	h, mem := newSearch(t)

	h.Add(ctx, "")
	h.Add(ctx, "   ")
	assert.Empty(t, h.Get(ctx))
	assert.Zero(t, mem.Len())
}

func TestSearchHistoryCapacity(t *testing.T) {
	ctx := context.Background()
	h, _ := newSearch(t)

	for i := 0; i < 20; i++ {
		h.Add(ctx, fmt.Sprintf("term %d", i))
	}
	got := h.Get(ctx)
	require.Len(t, got, MaxSearchTerms)
	assert.Equal(t, "term 19", got[0])
	assert.Equal(t, "term 5", got[MaxSearchTerms-1])
}

func TestSearchHistoryRemove(t *testing.T) {
	ctx := context.Background()
	h, _ := newSearch(t)

	h.Add(ctx, "a")
	h.Add(ctx, "B")
	h.Remove(ctx, " b ")
	assert.Equal(t, []string{"a"}, h.Get(ctx))
}

func TestSearchHistoryRemoveLastDeletesKey(t *testing.T) {
	ctx := context.Background()
	h, mem := newSearch(t)

	h.Add(ctx, "only")
	h.Remove(ctx, "ONLY")

	_, ok, err := mem.GetItem(ctx, SearchHistoryKey)
	require.NoError(t, err)
	assert.False(t, ok, "key should be deleted, not set to an empty array")

	// Idempotent.
	h.Remove(ctx, "only")
	assert.Empty(t, h.Get(ctx))
	assert.Zero(t, mem.Len())
}

func TestSearchHistoryClear(t *testing.T) {
	ctx := context.Background()
	h, mem := newSearch(t)

	h.Add(ctx, "a")
	h.Clear(ctx)
	assert.Empty(t, h.Get(ctx))
	assert.Zero(t, mem.Len())
}

func TestSearchHistoryCorruptPayload(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"not json", `{"a":1}`, `[1,2]`, `null`} {
		h, mem := newSearch(t)
		require.NoError(t, mem.SetItem(ctx, SearchHistoryKey, raw))
		assert.NotNil(t, h.Get(ctx), raw)
		assert.Empty(t, h.Get(ctx), raw)

		h.Add(ctx, "fresh")
		assert.Equal(t, []string{"fresh"}, h.Get(ctx), raw)
	}
}

func TestSearchHistorySwallowsStorageFailures(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	h := NewSearchHistory(brokenStorage{}, zerolog.New(&buf))

	assert.NotPanics(t, func() {
		h.Add(ctx, "x")
		h.Remove(ctx, "x")
		h.Clear(ctx)
	})
	assert.Empty(t, h.Get(ctx))
	assert.Contains(t, buf.String(), "storage failure swallowed")
}

func TestSearchHistoryQuotaExceededIsNoop(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryWithQuota(len(SearchHistoryKey) + 10)
	h := NewSearchHistory(mem, zerolog.Nop())

	h.Add(ctx, "ok")
	h.Add(ctx, "this term does not fit")
	assert.Equal(t, []string{"ok"}, h.Get(ctx))
}

func TestSearchHistoryOnSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewSearchHistory(db, zerolog.Nop())
	h.Add(ctx, "one")
	h.Add(ctx, "two")
	h.Add(ctx, "ONE")
	assert.Equal(t, []string{"ONE", "two"}, h.Get(ctx))
	h.Clear(ctx)
	assert.Empty(t, h.Get(ctx))
}

// slowStorage delays reads so unsynchronized read-modify-write cycles overlap.
type slowStorage struct {
	*storage.Memory
}

func (s slowStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	time.Sleep(time.Millisecond)
	return s.Memory.GetItem(ctx, key)
}

func TestSearchHistoryConcurrentAddsKeepEveryTerm(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	session := storage.Scoped(slowStorage{mem}, "session-1")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			// One store per request, as the handlers build them.
			NewSearchHistory(session, zerolog.Nop()).Add(ctx, fmt.Sprintf("term %d", i))
		}()
	}
	wg.Wait()

	got := NewSearchHistory(session, zerolog.Nop()).Get(ctx)
	assert.Len(t, got, 10)
	for i := 0; i < 10; i++ {
		assert.Contains(t, got, fmt.Sprintf("term %d", i))
	}
}

func TestSearchHistoryConcurrentAddAndRemove(t *testing.T) {
	ctx := context.Background()
	mem := slowStorage{storage.NewMemory()}
	seed := NewSearchHistory(mem, zerolog.Nop())
	for i := 0; i < 5; i++ {
		seed.Add(ctx, fmt.Sprintf("old %d", i))
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		i := i
		wg.Add(2)
		go func() {
			defer wg.Done()
			NewSearchHistory(mem, zerolog.Nop()).Remove(ctx, fmt.Sprintf("old %d", i))
		}()
		go func() {
			defer wg.Done()
			NewSearchHistory(mem, zerolog.Nop()).Add(ctx, fmt.Sprintf("new %d", i))
		}()
	}
	wg.Wait()

	got := seed.Get(ctx)
	assert.Len(t, got, 5)
	for _, term := range got {
		assert.Contains(t, term, "new")
	}
}

func TestSearchHistoryClosedBackendIsSwallowed(t *testing.T) {
	ctx := context.Background()
	db, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	var buf bytes.Buffer
	h := NewSearchHistory(db, zerolog.New(&buf))
	h.Add(ctx, "lost")
	assert.Empty(t, h.Get(ctx))
	assert.Contains(t, buf.String(), errs.ErrStorageUnavailable.Error())
}
