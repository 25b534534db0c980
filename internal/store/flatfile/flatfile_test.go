package flatfile

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goto/salt/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	return NewStore(log.NewNoop(), Config{Dir: filepath.Join("testdata", dir)})
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, "db_mock_data")

	ts, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Len(t, ts.Assets, 2)
	assert.Len(t, ts.Columns, 2)
	assert.Len(t, ts.Tags, 3)
	assert.Len(t, ts.Lineage, 2)
	assert.Len(t, ts.Users, 2)
	assert.Len(t, ts.Bookmarks, 2)
	assert.Empty(t, ts.Problems)
}

func TestStore_LoadCachesUntilCleared(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, "db_mock_data")

	first, err := store.Load(ctx)
	require.NoError(t, err)

	second, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)

	store.ClearCache()

	third, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestStore_LoadConcurrentCallersShareOneRead(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, "db_mock_data")

	var reads int32
	started := make(chan struct{})
	release := make(chan struct{})
	realRead := store.readAll
	store.readAll = func() *TableSet {
		if atomic.AddInt32(&reads, 1) == 1 {
			close(started)
			<-release
		}
		return realRead()
	}

	const callers = 16
	results := make([]*TableSet, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ts, err := store.Load(ctx)
			assert.NoError(t, err)
			results[i] = ts
		}(i)
	}

	// every caller is either blocked inside the in-flight read or waiting
	// on it; clearing the cache now must not fan out into extra reads
	<-started
	store.ClearCache()
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&reads))
	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i])
	}

	// the in-flight read finished after ClearCache, so its result is cached
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Same(t, results[0], again)
	assert.EqualValues(t, 1, atomic.LoadInt32(&reads))

	store.ClearCache()
	fresh, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotSame(t, results[0], fresh)
	assert.EqualValues(t, 2, atomic.LoadInt32(&reads))
}

func TestStore_LoadCancelledContext(t *testing.T) {
	store := newTestStore(t, "db_mock_data")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_LoadDegradesPerTable(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, "degraded")

	ts, err := store.Load(ctx)
	require.NoError(t, err)

	// the malformed row is skipped, the rest of the table survives
	assert.Len(t, ts.Assets, 2)
	assert.Equal(t, "asset-ok", ts.Assets[0].ID)
	assert.Equal(t, "asset-ok-2", ts.Assets[1].ID)

	// one row problem plus eight unreadable tables
	assert.Len(t, ts.Problems, 9)

	// empty tables still serve
	assert.Empty(t, ts.Users)
	assert.Empty(t, ts.Lineage)
}

func TestAssetRowCoercion(t *testing.T) {
	ctx := context.Background()
	ts, err := newTestStore(t, "db_mock_data").Load(ctx)
	require.NoError(t, err)

	orders := ts.indexes().assetByID["asset-orders"]
	require.NotNil(t, orders)
	assert.True(t, orders.IsSensitive)
	require.NotNil(t, orders.SampleRecordCount)
	assert.Equal(t, 120, *orders.SampleRecordCount)
	assert.Equal(t, "2024-03-01T10:00:00Z", orders.LastModified)
	assert.Len(t, orders.SampleData, 3)

	exports := ts.indexes().assetByID["asset-exports"]
	require.NotNil(t, exports)
	// "Ja" is not a boolean; coercion falls back to false rather than failing
	assert.False(t, exports.IsSensitive)
	assert.Nil(t, exports.SampleRecordCount)
	// date-only values normalize to RFC3339 midnight
	assert.Equal(t, "2024-01-02T00:00:00Z", exports.CreatedAt)
	// unparseable timestamps are dropped
	assert.Empty(t, exports.UpdatedAt)
	assert.Equal(t, "exports/daily.csv", exports.CSVPath)
}
