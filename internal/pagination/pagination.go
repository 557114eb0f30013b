// Package pagination drives repeated cursor-paged fetches behind a
// single call, accumulating results, honoring an optional result cap,
// and reporting truncation.
package pagination

import "context"

// MaxPageSize is the largest page the remote store will return
const MaxPageSize = 100

// Page is one raw page envelope from the remote store
type Page[T any] struct {
	Results    []T
	HasMore    bool
	NextCursor string
}

// FetchFunc fetches a single page starting at cursor. An empty cursor
// requests the first page.
type FetchFunc[T any] func(ctx context.Context, cursor string, pageSize int) (Page[T], error)

// Options bounds a paginated collection
type Options struct {
	// Limit caps the accumulated result count; zero means unlimited.
	Limit int

	// PageSize is the per-request page size, capped at MaxPageSize.
	PageSize int
}

// Result mirrors the last raw page envelope with Results replaced by the
// full accumulated set and HasMore/NextCursor reflecting the final,
// truncation-aware state.
type Result[T any] struct {
	Results    []T
	HasMore    bool
	NextCursor string

	// Truncated is true iff accumulation stopped because of Limit while
	// more data existed upstream or within the final fetched page.
	Truncated bool
}

// Collect fetches pages sequentially until the upstream is exhausted or
// the limit is reached. Page n+1 depends on page n's cursor, so fetches
// are never issued concurrently.
func Collect[T any](ctx context.Context, fetch FetchFunc[T], opts Options) (Result[T], error) {
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	var out Result[T]

	cursor := ""
	hasMore := true

	for hasMore {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		// Limit already satisfied with more upstream: stop before fetching
		if opts.Limit > 0 && len(out.Results) >= opts.Limit {
			out.Truncated = true
			out.HasMore = true
			out.NextCursor = cursor

			return out, nil
		}

		requestSize := pageSize
		if opts.Limit > 0 {
			if remaining := opts.Limit - len(out.Results); remaining < requestSize {
				requestSize = remaining
			}
		}

		page, err := fetch(ctx, cursor, requestSize)
		if err != nil {
			return out, err
		}

		// A page that would overshoot the limit is sliced to the remaining
		// budget; the cut itself counts as truncation even when the
		// upstream reports no further pages.
		if opts.Limit > 0 && len(out.Results)+len(page.Results) > opts.Limit {
			remaining := opts.Limit - len(out.Results)
			out.Results = append(out.Results, page.Results[:remaining]...)
			out.Truncated = true
			out.HasMore = true
			out.NextCursor = page.NextCursor

			return out, nil
		}

		out.Results = append(out.Results, page.Results...)
		hasMore = page.HasMore
		cursor = page.NextCursor

		if opts.Limit > 0 && len(out.Results) >= opts.Limit && hasMore {
			out.Truncated = true
			out.HasMore = true
			out.NextCursor = cursor

			return out, nil
		}
	}

	out.HasMore = false
	out.NextCursor = ""

	return out, nil
}
