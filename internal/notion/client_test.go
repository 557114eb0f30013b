package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{
		Token:   "test-token",
		BaseURL: server.URL,
		Version: "2025-09-03",
	})
	require.NoError(t, err)

	return client
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(ClientOptions{})
	assert.Error(t, err)
}

func TestClientSendsAuthHeaders(t *testing.T) {
	var gotAuth, gotVersion string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")

		json.NewEncoder(w).Encode(Page{ID: "page-1"})
	})

	_, err := client.RetrievePage(context.Background(), "page-1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "2025-09-03", gotVersion)
}

func TestClientDecodesErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"object":"error","code":"rate_limited","message":"slow down"}`))
	})

	_, err := client.RetrievePage(context.Background(), "page-1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "rate_limited", apiErr.Code)
	assert.Equal(t, "slow down", apiErr.Message)
	assert.True(t, IsRateLimit(err))
}

func TestClientFallsBackToStatusText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("not json"))
	})

	_, err := client.RetrievePage(context.Background(), "page-1")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
	assert.Equal(t, "not json", apiErr.Body)
}

func TestQueryDataSourceSendsRequestBody(t *testing.T) {
	var gotPath string

	var gotBody map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(QueryResult{Results: []Page{{ID: "page-1"}}})
	})

	result, err := client.QueryDataSource(context.Background(), "ds-1", &QueryRequest{
		StartCursor: "cur-1",
		PageSize:    25,
	})
	require.NoError(t, err)

	assert.Equal(t, "/data_sources/ds-1/query", gotPath)
	assert.Equal(t, "cur-1", gotBody["start_cursor"])
	assert.Equal(t, float64(25), gotBody["page_size"])
	require.Len(t, result.Results, 1)
	assert.Equal(t, "page-1", result.Results[0].ID)
}

func TestListBlockChildrenBuildsPageQuery(t *testing.T) {
	var gotQuery string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(BlockChildren{})
	})

	_, err := client.ListBlockChildren(context.Background(), "block-1", "cur-1", 50)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "start_cursor=cur-1")
	assert.Contains(t, gotQuery, "page_size=50")
}

func TestPageQuery(t *testing.T) {
	assert.Equal(t, "", pageQuery("", 0))
	assert.Equal(t, "?page_size=10", pageQuery("", 10))
	assert.Equal(t, "?start_cursor=abc", pageQuery("abc", 0))
	assert.Equal(t, "?page_size=10&start_cursor=abc", pageQuery("abc", 10))
}

func TestClientHonorsContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(Page{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.RetrievePage(ctx, "page-1")
	assert.Error(t, err)
}
