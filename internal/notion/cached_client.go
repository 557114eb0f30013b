package notion

import (
	"context"
	"encoding/json"
	"time"

	"github.com/klynch/notionctl/internal/cache"
	"github.com/klynch/notionctl/internal/logging"
)

// CachedClient wraps a Client with short-TTL caching of data source
// schema reads. Every other call passes through untouched; schemas are
// the only response safe to reuse within a command sequence.
type CachedClient struct {
	client Client
	cache  cache.Cache
	ttl    time.Duration
}

// NewCachedClient creates a client that caches schema responses
func NewCachedClient(client Client, store cache.Cache, ttl time.Duration) *CachedClient {
	return &CachedClient{
		client: client,
		cache:  store,
		ttl:    ttl,
	}
}

// RetrieveDataSource fetches a data source, serving from cache when a
// fresh entry exists
func (c *CachedClient) RetrieveDataSource(ctx context.Context, dataSourceID string) (*DataSource, error) {
	cacheKey := "data_source:" + dataSourceID

	if data, err := c.cache.Get(ctx, cacheKey); err == nil {
		var ds DataSource
		if err := json.Unmarshal(data, &ds); err == nil {
			logging.Debugf("schema cache hit for %s", dataSourceID)
			return &ds, nil
		}
	}

	ds, err := c.client.RetrieveDataSource(ctx, dataSourceID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(ds); err == nil {
		if err := c.cache.Set(ctx, cacheKey, data, c.ttl); err != nil {
			logging.Warnf("failed to cache schema for %s: %v", dataSourceID, err)
		}
	}

	return ds, nil
}

func (c *CachedClient) QueryDataSource(ctx context.Context, dataSourceID string, req *QueryRequest) (*QueryResult, error) {
	return c.client.QueryDataSource(ctx, dataSourceID, req)
}

func (c *CachedClient) RetrievePage(ctx context.Context, pageID string) (*Page, error) {
	return c.client.RetrievePage(ctx, pageID)
}

func (c *CachedClient) CreatePage(ctx context.Context, req *CreatePageRequest) (*Page, error) {
	return c.client.CreatePage(ctx, req)
}

func (c *CachedClient) UpdatePage(ctx context.Context, pageID string, req *UpdatePageRequest) (*Page, error) {
	return c.client.UpdatePage(ctx, pageID, req)
}

func (c *CachedClient) ListBlockChildren(ctx context.Context, blockID, cursor string, pageSize int) (*BlockChildren, error) {
	return c.client.ListBlockChildren(ctx, blockID, cursor, pageSize)
}

func (c *CachedClient) AppendBlockChildren(ctx context.Context, blockID string, blocks []Block) (*BlockChildren, error) {
	return c.client.AppendBlockChildren(ctx, blockID, blocks)
}

func (c *CachedClient) DeleteBlock(ctx context.Context, blockID string) (*Block, error) {
	return c.client.DeleteBlock(ctx, blockID)
}

func (c *CachedClient) Search(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	return c.client.Search(ctx, req)
}

func (c *CachedClient) ListUsers(ctx context.Context, cursor string, pageSize int) (*UserList, error) {
	return c.client.ListUsers(ctx, cursor, pageSize)
}

func (c *CachedClient) RetrieveUser(ctx context.Context, userID string) (*User, error) {
	return c.client.RetrieveUser(ctx, userID)
}

func (c *CachedClient) ListComments(ctx context.Context, blockID, cursor string, pageSize int) (*CommentList, error) {
	return c.client.ListComments(ctx, blockID, cursor, pageSize)
}

func (c *CachedClient) CreateComment(ctx context.Context, req *CreateCommentRequest) (*Comment, error) {
	return c.client.CreateComment(ctx, req)
}
