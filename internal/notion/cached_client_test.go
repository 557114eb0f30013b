package notion_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klynch/notionctl/internal/cache"
	"github.com/klynch/notionctl/internal/notion"
	"github.com/klynch/notionctl/internal/testutil"
)

// memoryCache is a minimal in-memory cache.Cache for tests
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := m.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}

	return data, nil
}

func (m *memoryCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.entries[key] = data
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func (m *memoryCache) Clear(_ context.Context) error {
	m.entries = make(map[string][]byte)
	return nil
}

func (m *memoryCache) Cleanup(_ context.Context) error {
	return nil
}

func TestCachedClientServesSchemaFromCache(t *testing.T) {
	ds := testutil.NewDataSource("ds-1", map[string]string{"Name": "title"})
	mock := testutil.NewMockClient(testutil.WithDataSource(ds))
	client := notion.NewCachedClient(mock, newMemoryCache(), time.Minute)

	ctx := context.Background()

	first, err := client.RetrieveDataSource(ctx, "ds-1")
	require.NoError(t, err)
	assert.Equal(t, "ds-1", first.ID)

	second, err := client.RetrieveDataSource(ctx, "ds-1")
	require.NoError(t, err)
	assert.Equal(t, first.Properties, second.Properties)

	assert.Equal(t, 1, mock.CallCount("RetrieveDataSource"))
}

func TestCachedClientMissFetchesUpstream(t *testing.T) {
	ds := testutil.NewDataSource("ds-1", map[string]string{"Name": "title"})
	mock := testutil.NewMockClient(testutil.WithDataSource(ds))
	client := notion.NewCachedClient(mock, newMemoryCache(), time.Minute)

	_, err := client.RetrieveDataSource(context.Background(), "ds-1")
	require.NoError(t, err)

	assert.Equal(t, 1, mock.CallCount("RetrieveDataSource"))
}

func TestCachedClientPropagatesUpstreamError(t *testing.T) {
	mock := testutil.NewMockClient()
	client := notion.NewCachedClient(mock, newMemoryCache(), time.Minute)

	_, err := client.RetrieveDataSource(context.Background(), "missing")
	assert.True(t, notion.IsNotFound(err))
}

func TestCachedClientPassesThroughOtherCalls(t *testing.T) {
	mock := testutil.NewMockClient(testutil.WithPages(testutil.NewPages(3)))
	client := notion.NewCachedClient(mock, newMemoryCache(), time.Minute)

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result, err := client.QueryDataSource(ctx, "ds-1", &notion.QueryRequest{PageSize: 10})
		require.NoError(t, err)
		assert.Len(t, result.Results, 3)
	}

	assert.Equal(t, 2, mock.CallCount("QueryDataSource"))
}
