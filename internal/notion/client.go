// Package notion implements the client for the remote document store:
// typed API objects, an HTTP transport, and retrying and caching
// decorators that keep call sites free of resilience boilerplate.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/klynch/notionctl/internal/logging"
)

// Client defines the interface for remote document store operations.
// All listing calls share the {results, has_more, next_cursor} envelope
// consumed by the pagination engine.
type Client interface {
	// RetrieveDataSource fetches a data source, including its property schema.
	RetrieveDataSource(ctx context.Context, dataSourceID string) (*DataSource, error)

	// QueryDataSource fetches one page of rows matching the request's
	// filter and sort, starting at the request's cursor.
	QueryDataSource(ctx context.Context, dataSourceID string, req *QueryRequest) (*QueryResult, error)

	// RetrievePage fetches a single page with its property values.
	RetrievePage(ctx context.Context, pageID string) (*Page, error)

	// CreatePage creates a page under the request's parent.
	CreatePage(ctx context.Context, req *CreatePageRequest) (*Page, error)

	// UpdatePage patches a page's properties or archived state.
	UpdatePage(ctx context.Context, pageID string, req *UpdatePageRequest) (*Page, error)

	// ListBlockChildren fetches one page of a block's children.
	ListBlockChildren(ctx context.Context, blockID, cursor string, pageSize int) (*BlockChildren, error)

	// AppendBlockChildren appends blocks to the end of a block's children.
	AppendBlockChildren(ctx context.Context, blockID string, blocks []Block) (*BlockChildren, error)

	// DeleteBlock moves a block to the trash.
	DeleteBlock(ctx context.Context, blockID string) (*Block, error)

	// Search fetches one page of workspace search results.
	Search(ctx context.Context, req *SearchRequest) (*SearchResult, error)

	// ListUsers fetches one page of workspace users.
	ListUsers(ctx context.Context, cursor string, pageSize int) (*UserList, error)

	// RetrieveUser fetches a single user.
	RetrieveUser(ctx context.Context, userID string) (*User, error)

	// ListComments fetches one page of comments on a page or block.
	ListComments(ctx context.Context, blockID, cursor string, pageSize int) (*CommentList, error)

	// CreateComment adds a comment to a page or discussion.
	CreateComment(ctx context.Context, req *CreateCommentRequest) (*Comment, error)
}

// ClientOptions configures the HTTP client
type ClientOptions struct {
	Token   string
	BaseURL string
	Version string
	Timeout time.Duration
}

// httpClient implements Client over net/http
type httpClient struct {
	token   string
	baseURL string
	version string
	http    *http.Client
}

// NewClient creates an HTTP-backed client for the remote document store
func NewClient(opts ClientOptions) (Client, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("API token is required")
	}

	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.notion.com/v1"
	}

	if opts.Version == "" {
		opts.Version = "2025-09-03"
	}

	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	return &httpClient{
		token:   opts.Token,
		baseURL: opts.BaseURL,
		version: opts.Version,
		http:    &http.Client{Timeout: opts.Timeout},
	}, nil
}

func (c *httpClient) RetrieveDataSource(ctx context.Context, dataSourceID string) (*DataSource, error) {
	var ds DataSource
	if err := c.do(ctx, http.MethodGet, "/data_sources/"+dataSourceID, nil, &ds); err != nil {
		return nil, err
	}

	return &ds, nil
}

func (c *httpClient) QueryDataSource(ctx context.Context, dataSourceID string, req *QueryRequest) (*QueryResult, error) {
	if req == nil {
		req = &QueryRequest{}
	}

	var result QueryResult
	if err := c.do(ctx, http.MethodPost, "/data_sources/"+dataSourceID+"/query", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *httpClient) RetrievePage(ctx context.Context, pageID string) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/pages/"+pageID, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *httpClient) CreatePage(ctx context.Context, req *CreatePageRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodPost, "/pages", req, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *httpClient) UpdatePage(ctx context.Context, pageID string, req *UpdatePageRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodPatch, "/pages/"+pageID, req, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *httpClient) ListBlockChildren(ctx context.Context, blockID, cursor string, pageSize int) (*BlockChildren, error) {
	path := "/blocks/" + blockID + "/children" + pageQuery(cursor, pageSize)

	var children BlockChildren
	if err := c.do(ctx, http.MethodGet, path, nil, &children); err != nil {
		return nil, err
	}

	return &children, nil
}

func (c *httpClient) AppendBlockChildren(ctx context.Context, blockID string, blocks []Block) (*BlockChildren, error) {
	body := struct {
		Children []Block `json:"children"`
	}{Children: blocks}

	var children BlockChildren
	if err := c.do(ctx, http.MethodPatch, "/blocks/"+blockID+"/children", body, &children); err != nil {
		return nil, err
	}

	return &children, nil
}

func (c *httpClient) DeleteBlock(ctx context.Context, blockID string) (*Block, error) {
	var block Block
	if err := c.do(ctx, http.MethodDelete, "/blocks/"+blockID, nil, &block); err != nil {
		return nil, err
	}

	return &block, nil
}

func (c *httpClient) Search(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	if req == nil {
		req = &SearchRequest{}
	}

	var result SearchResult
	if err := c.do(ctx, http.MethodPost, "/search", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *httpClient) ListUsers(ctx context.Context, cursor string, pageSize int) (*UserList, error) {
	var users UserList
	if err := c.do(ctx, http.MethodGet, "/users"+pageQuery(cursor, pageSize), nil, &users); err != nil {
		return nil, err
	}

	return &users, nil
}

func (c *httpClient) RetrieveUser(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/"+userID, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *httpClient) ListComments(ctx context.Context, blockID, cursor string, pageSize int) (*CommentList, error) {
	query := pageQuery(cursor, pageSize)
	if query == "" {
		query = "?block_id=" + url.QueryEscape(blockID)
	} else {
		query += "&block_id=" + url.QueryEscape(blockID)
	}

	var comments CommentList
	if err := c.do(ctx, http.MethodGet, "/comments"+query, nil, &comments); err != nil {
		return nil, err
	}

	return &comments, nil
}

func (c *httpClient) CreateComment(ctx context.Context, req *CreateCommentRequest) (*Comment, error) {
	var comment Comment
	if err := c.do(ctx, http.MethodPost, "/comments", req, &comment); err != nil {
		return nil, err
	}

	return &comment, nil
}

// do issues one request and decodes the response into out. Non-2xx
// responses become *APIError carrying the store's code and message.
func (c *httpClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Debugf("%s %s", method, path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// newAPIError decodes the store's error envelope, falling back to the
// raw body when the envelope itself fails to parse.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Body:       string(body),
	}

	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Code = envelope.Code
		apiErr.Message = envelope.Message
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}

// pageQuery builds the cursor/page_size query string for GET list calls
func pageQuery(cursor string, pageSize int) string {
	values := url.Values{}

	if cursor != "" {
		values.Set("start_cursor", cursor)
	}

	if pageSize > 0 {
		values.Set("page_size", strconv.Itoa(pageSize))
	}

	if len(values) == 0 {
		return ""
	}

	return "?" + values.Encode()
}
