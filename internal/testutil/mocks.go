package testutil

import (
	"context"
	"strconv"
	"sync"

	"github.com/klynch/notionctl/internal/notion"
)

// maxPageSize mirrors the remote store's per-request result cap
const maxPageSize = 100

// MockClient implements notion.Client for testing with error injection
// and call counting. Paged listings are served from in-memory slices
// using numeric cursors.
type MockClient struct {
	mu sync.RWMutex

	dataSources map[string]*notion.DataSource
	pages       map[string]*notion.Page
	queryPages  []notion.Page
	blocks      []notion.Block
	users       []notion.User
	comments    []notion.Comment
	errors      map[string]error
	callCounts  map[string]int
}

// MockOption is a functional option for configuring MockClient
type MockOption func(*MockClient)

// WithDataSource registers a data source by ID
func WithDataSource(ds *notion.DataSource) MockOption {
	return func(m *MockClient) {
		m.dataSources[ds.ID] = ds
	}
}

// WithPages sets the pages returned by queries and searches
func WithPages(pages []notion.Page) MockOption {
	return func(m *MockClient) {
		m.queryPages = pages

		for i := range pages {
			m.pages[pages[i].ID] = &pages[i]
		}
	}
}

// WithBlocks sets the blocks returned by child listing
func WithBlocks(blocks []notion.Block) MockOption {
	return func(m *MockClient) {
		m.blocks = blocks
	}
}

// WithUsers sets the workspace user list
func WithUsers(users []notion.User) MockOption {
	return func(m *MockClient) {
		m.users = users
	}
}

// WithComments sets the comment list
func WithComments(comments []notion.Comment) MockOption {
	return func(m *MockClient) {
		m.comments = comments
	}
}

// WithError injects an error for a named operation
func WithError(operation string, err error) MockOption {
	return func(m *MockClient) {
		m.errors[operation] = err
	}
}

// NewMockClient creates a mock client with the given options
func NewMockClient(opts ...MockOption) *MockClient {
	mock := &MockClient{
		dataSources: make(map[string]*notion.DataSource),
		pages:       make(map[string]*notion.Page),
		errors:      make(map[string]error),
		callCounts:  make(map[string]int),
	}

	for _, opt := range opts {
		opt(mock)
	}

	return mock
}

// CallCount returns how many times the named operation was invoked
func (m *MockClient) CallCount(operation string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.callCounts[operation]
}

func (m *MockClient) record(operation string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCounts[operation]++

	return m.errors[operation]
}

// slicePage serves one page of a length-n listing. Cursors are the
// stringified start offset of the next page.
func slicePage(total, pageSize int, cursor string) (start, end int, next string, hasMore bool) {
	if cursor != "" {
		start, _ = strconv.Atoi(cursor)
	}

	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	end = start + pageSize
	if end >= total {
		return start, total, "", false
	}

	return start, end, strconv.Itoa(end), true
}

func (m *MockClient) RetrieveDataSource(_ context.Context, dataSourceID string) (*notion.DataSource, error) {
	if err := m.record("RetrieveDataSource"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ds, ok := m.dataSources[dataSourceID]
	if !ok {
		return nil, &notion.APIError{StatusCode: 404, Code: "object_not_found", Message: "data source not found"}
	}

	return ds, nil
}

func (m *MockClient) QueryDataSource(_ context.Context, _ string, req *notion.QueryRequest) (*notion.QueryResult, error) {
	if err := m.record("QueryDataSource"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	start, end, next, hasMore := slicePage(len(m.queryPages), req.PageSize, req.StartCursor)

	return &notion.QueryResult{
		Results:    m.queryPages[start:end],
		HasMore:    hasMore,
		NextCursor: next,
	}, nil
}

func (m *MockClient) RetrievePage(_ context.Context, pageID string) (*notion.Page, error) {
	if err := m.record("RetrievePage"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	page, ok := m.pages[pageID]
	if !ok {
		return nil, &notion.APIError{StatusCode: 404, Code: "object_not_found", Message: "page not found"}
	}

	return page, nil
}

func (m *MockClient) CreatePage(_ context.Context, req *notion.CreatePageRequest) (*notion.Page, error) {
	if err := m.record("CreatePage"); err != nil {
		return nil, err
	}

	page := &notion.Page{
		Object:     "page",
		ID:         "created-page-id",
		Parent:     &req.Parent,
		Properties: map[string]notion.PropertyValue{},
	}

	return page, nil
}

func (m *MockClient) UpdatePage(_ context.Context, pageID string, _ *notion.UpdatePageRequest) (*notion.Page, error) {
	if err := m.record("UpdatePage"); err != nil {
		return nil, err
	}

	return &notion.Page{Object: "page", ID: pageID}, nil
}

func (m *MockClient) ListBlockChildren(_ context.Context, _ string, cursor string, pageSize int) (*notion.BlockChildren, error) {
	if err := m.record("ListBlockChildren"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	start, end, next, hasMore := slicePage(len(m.blocks), pageSize, cursor)

	return &notion.BlockChildren{
		Results:    m.blocks[start:end],
		HasMore:    hasMore,
		NextCursor: next,
	}, nil
}

func (m *MockClient) AppendBlockChildren(_ context.Context, _ string, blocks []notion.Block) (*notion.BlockChildren, error) {
	if err := m.record("AppendBlockChildren"); err != nil {
		return nil, err
	}

	return &notion.BlockChildren{Results: blocks}, nil
}

func (m *MockClient) DeleteBlock(_ context.Context, blockID string) (*notion.Block, error) {
	if err := m.record("DeleteBlock"); err != nil {
		return nil, err
	}

	return &notion.Block{ID: blockID}, nil
}

func (m *MockClient) Search(_ context.Context, req *notion.SearchRequest) (*notion.SearchResult, error) {
	if err := m.record("Search"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	start, end, next, hasMore := slicePage(len(m.queryPages), req.PageSize, req.StartCursor)

	return &notion.SearchResult{
		Results:    m.queryPages[start:end],
		HasMore:    hasMore,
		NextCursor: next,
	}, nil
}

func (m *MockClient) ListUsers(_ context.Context, cursor string, pageSize int) (*notion.UserList, error) {
	if err := m.record("ListUsers"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	start, end, next, hasMore := slicePage(len(m.users), pageSize, cursor)

	return &notion.UserList{
		Results:    m.users[start:end],
		HasMore:    hasMore,
		NextCursor: next,
	}, nil
}

func (m *MockClient) RetrieveUser(_ context.Context, userID string) (*notion.User, error) {
	if err := m.record("RetrieveUser"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.users {
		if m.users[i].ID == userID {
			return &m.users[i], nil
		}
	}

	return nil, &notion.APIError{StatusCode: 404, Code: "object_not_found", Message: "user not found"}
}

func (m *MockClient) ListComments(_ context.Context, _ string, cursor string, pageSize int) (*notion.CommentList, error) {
	if err := m.record("ListComments"); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	start, end, next, hasMore := slicePage(len(m.comments), pageSize, cursor)

	return &notion.CommentList{
		Results:    m.comments[start:end],
		HasMore:    hasMore,
		NextCursor: next,
	}, nil
}

func (m *MockClient) CreateComment(_ context.Context, req *notion.CreateCommentRequest) (*notion.Comment, error) {
	if err := m.record("CreateComment"); err != nil {
		return nil, err
	}

	return &notion.Comment{
		Object:   "comment",
		ID:       "created-comment-id",
		Parent:   req.Parent,
		RichText: req.RichText,
	}, nil
}
