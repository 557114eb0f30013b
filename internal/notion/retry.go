package notion

import (
	"context"
	"math/rand"
	"time"

	"github.com/klynch/notionctl/internal/logging"
)

const (
	// DefaultMaxAttempts bounds the rate-limit retry loop
	DefaultMaxAttempts = 3

	// DefaultBaseDelay is the first backoff delay
	DefaultBaseDelay = time.Second
)

// RetryOptions configures the rate-limit retry policy
type RetryOptions struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      bool
}

func (o RetryOptions) withDefaults() RetryOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}

	if o.BaseDelay <= 0 {
		o.BaseDelay = DefaultBaseDelay
	}

	return o
}

// WithRetry invokes fn, retrying only on rate limit signals with
// exponential backoff. Attempt n sleeps baseDelay * 2^(n-1) beforehand;
// with jitter enabled the delay is scaled by a uniform factor in
// [0.5, 1.5). Any other failure, and the final rate-limit failure once
// attempts are exhausted, propagates to the caller unchanged.
func WithRetry[T any](ctx context.Context, opts RetryOptions, fn func(context.Context) (T, error)) (T, error) {
	opts = opts.withDefaults()

	var zero T

	var lastErr error

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		if !IsRateLimit(err) {
			return zero, err
		}

		lastErr = err

		if attempt == opts.MaxAttempts {
			break
		}

		delay := backoffDelay(opts, attempt)
		logging.Debugf("rate limited, retrying in %s (attempt %d/%d)", delay, attempt, opts.MaxAttempts)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, lastErr
}

// backoffDelay computes the sleep before the attempt after the given one
func backoffDelay(opts RetryOptions, attempt int) time.Duration {
	delay := opts.BaseDelay << (attempt - 1)

	if opts.Jitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	}

	return delay
}

// retryClient decorates every Client method with the retry policy so
// call sites carry no per-call resilience boilerplate. The call surface
// is enumerated once, here.
type retryClient struct {
	client Client
	opts   RetryOptions
}

// NewRetryClient wraps client so every method retries rate-limited calls
func NewRetryClient(client Client, opts RetryOptions) Client {
	return &retryClient{
		client: client,
		opts:   opts.withDefaults(),
	}
}

func (r *retryClient) RetrieveDataSource(ctx context.Context, dataSourceID string) (*DataSource, error) {
	return WithRetry(ctx, r.opts, func(ctx context.Context) (*DataSource, error) {
		return r.client.RetrieveDataSource(ctx, dataSourceID)
	})
}

func (r *retryClient) QueryDataSource(ctx context.Context, dataSourceID string, req *QueryRequest) (*QueryResult, error) {
	return WithRetry(ctx, r.opts, func(ctx context.Context) (*QueryResult, error) {
		return r.client.QueryDataSource(ctx, dataSourceID, req)
	})
}

func (r *retryClient) RetrievePage(ctx context.Context, pageID string) (*Page, error) {
	return WithRetry(ctx, r.opts, func(ctx context.Context) (*Page, error) {
		return r.client.RetrievePage(ctx, pageID)
	})
}

func (r *retryClient) CreatePage(ctx context.Context, req *CreatePageRequest) (*Page, error) {
	return WithRetry(ctx, r.opts, func(ctx context.Context) (*Page, error) {
		return r.client.CreatePage(ctx, req)
	})
}

func (r *retryClient) UpdatePage(ctx context.Context, pageID string, req *UpdatePageRequest) (*Page, error) {
	return WithRetry(ctx, r.opts, func(ctx context.Context) (*Page, error) {
		return r.client.UpdatePage(ctx, pageID, req)
	})
}

func (r *retryClient) ListBlockChildren(ctx context.Context, blockID, cursor string, pageSize int) (*BlockChildren, error) {
	return WithRetry(ctx, r.opts, func(ctx context.Context) (*BlockChildren, error) {
		return r.client.ListBlockChildren(ctx, blockID, cursor, pageSize)
	})
}

func (r *retryClient) AppendBlockChildren(ctx context.Context, blockID string, blocks []Block) (*BlockChildren, error) {
	return WithRetry(ctx, r.opts, func(ctx context.Context) (*BlockChildren, error) {
		return r.client.AppendBlockChildren(ctx, blockID, blocks)
	})
}

func (r *retryClient) DeleteBlock(ctx context.Context, blockID string) (*Block, error) {
	return WithRetry(ctx, r.opts, func(ctx context.Context) (*Block, error) {
		return r.client.DeleteBlock(ctx, blockID)
	})
}

func (r *retryClient) Search(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	return WithRetry(ctx, r.opts, func(ctx context.Context) (*SearchResult, error) {
		return r.client.Search(ctx, req)
	})
}

func (r *retryClient) ListUsers(ctx context.Context, cursor string, pageSize int) (*UserList, error) {
	return WithRetry(ctx, r.opts, func(ctx context.Context) (*UserList, error) {
		return r.client.ListUsers(ctx, cursor, pageSize)
	})
}

func (r *retryClient) RetrieveUser(ctx context.Context, userID string) (*User, error) {
	return WithRetry(ctx, r.opts, func(ctx context.Context) (*User, error) {
		return r.client.RetrieveUser(ctx, userID)
	})
}

func (r *retryClient) ListComments(ctx context.Context, blockID, cursor string, pageSize int) (*CommentList, error) {
	return WithRetry(ctx, r.opts, func(ctx context.Context) (*CommentList, error) {
		return r.client.ListComments(ctx, blockID, cursor, pageSize)
	})
}

func (r *retryClient) CreateComment(ctx context.Context, req *CreateCommentRequest) (*Comment, error) {
	return WithRetry(ctx, r.opts, func(ctx context.Context) (*Comment, error) {
		return r.client.CreateComment(ctx, req)
	})
}
