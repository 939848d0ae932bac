// Package paging enumerates the results of a query across server pages.
//
// A FetchFunc performs one search request. Results calls it with
// increasing offsets until the server-reported total is reached:
//
//	q := jql.Must(jql.OrderBy(jql.Must(fields.Project.Eq("PROJ")), fields.Created))
//	results, err := paging.New(q, client.Search, &paging.Options{PageSize: 50})
//	if err != nil {
//	    return err
//	}
//	for issue, err := range results.All(ctx) {
//	    ...
//	}
package paging

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/hugr-lab/jql-go"
	"github.com/hugr-lab/jql-go/internal/recovery"
)

var (
	// ErrInvalidOptions indicates a negative offset, page size or limit.
	ErrInvalidOptions = errors.New("invalid paging options")

	// ErrNilPage indicates a FetchFunc returned neither a page nor an error.
	ErrNilPage = errors.New("fetch returned no page")
)

// Request describes one page request.
type Request struct {
	// JQL is the rendered query text.
	JQL string

	// StartAt is the zero-based index of the first item to return.
	StartAt int

	// MaxResults is the requested page size; zero lets the server decide.
	MaxResults int
}

// Page is one page of results as reported by the server.
type Page[T any] struct {
	Items []T

	// StartAt is the index of the first item of the page.
	StartAt int

	// MaxResults is the page size the server applied. Zero means the
	// server returns no items for this query.
	MaxResults int

	// Total is the number of items matching the query.
	Total int
}

// FetchFunc performs a single page request.
type FetchFunc[T any] func(ctx context.Context, req Request) (*Page[T], error)

// Options configures enumeration.
type Options struct {
	// StartAt skips the first items of the result set.
	StartAt int

	// PageSize is sent as MaxResults with every request.
	// OPTIONAL: If 0, the server default applies.
	PageSize int

	// Limit stops enumeration after this many items.
	// OPTIONAL: If 0, all items are returned.
	Limit int

	// Logger for page fetch diagnostics.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

// Text adapts a raw query string to fmt.Stringer.
type Text string

func (t Text) String() string { return string(t) }

// Results is a lazily fetched result set. The first page is fetched once
// and shared by Count, Any and every enumeration.
// Safe for concurrent use.
type Results[T any] struct {
	query  string
	fetch  FetchFunc[T]
	opts   Options
	logger *slog.Logger

	mu    sync.Mutex
	first *Page[T]
}

// New prepares a result set for query. Nothing is fetched until the results are used.
func New[T any](query fmt.Stringer, fetch FetchFunc[T], opts *Options) (*Results[T], error) {
	if query == nil {
		return nil, fmt.Errorf("paging: query: %w", jql.ErrNullArgument)
	}
	if fetch == nil {
		return nil, fmt.Errorf("paging: fetch: %w", jql.ErrNullArgument)
	}

	var o Options
	if opts != nil {
		o = *opts
	}
	if o.StartAt < 0 || o.PageSize < 0 || o.Limit < 0 {
		return nil, fmt.Errorf("paging: %w: start %d, page size %d, limit %d",
			ErrInvalidOptions, o.StartAt, o.PageSize, o.Limit)
	}

	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Results[T]{
		query:  query.String(),
		fetch:  fetch,
		opts:   o,
		logger: logger,
	}, nil
}

// Query returns the query text sent with every request.
func (r *Results[T]) Query() string { return r.query }

// Count returns the server-reported number of matching items.
func (r *Results[T]) Count(ctx context.Context) (int, error) {
	page, err := r.firstPage(ctx, r.logger)
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}

// Any reports whether the query matches at least one item.
func (r *Results[T]) Any(ctx context.Context) (bool, error) {
	n, err := r.Count(ctx)
	return n > 0, err
}

// All yields every item from StartAt on, fetching pages as needed.
// A fetch error is yielded once and ends the sequence. Every enumeration
// gets a fresh run id, available to FetchFunc through RunIDFromContext.
func (r *Results[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		runID := uuid.NewString()
		ctx := WithRunID(ctx, runID)
		logger := r.logger.With("run", runID)

		page, err := r.firstPage(ctx, logger)
		if err != nil {
			yield(zero, err)
			return
		}
		if page.MaxResults == 0 {
			return
		}

		i, yielded := r.opts.StartAt, 0
		for i < page.Total {
			if len(page.Items) == 0 {
				logger.Warn("Empty page before total reached", "start_at", i, "total", page.Total)
				return
			}
			for _, item := range page.Items {
				i++
				if !yield(item, nil) {
					return
				}
				yielded++
				if r.opts.Limit > 0 && yielded >= r.opts.Limit {
					return
				}
			}
			if i < page.Total {
				if page, err = r.fetchPage(ctx, logger, i); err != nil {
					yield(zero, err)
					return
				}
			}
		}
	}
}

// Collect gathers all items into a slice.
func (r *Results[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	for item, err := range r.All(ctx) {
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *Results[T]) firstPage(ctx context.Context, logger *slog.Logger) (*Page[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.first != nil {
		return r.first, nil
	}
	page, err := r.fetchPage(ctx, logger, r.opts.StartAt)
	if err != nil {
		return nil, err
	}
	r.first = page
	return page, nil
}

func (r *Results[T]) fetchPage(ctx context.Context, logger *slog.Logger, startAt int) (*Page[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("paging: %w", err)
	}

	req := Request{JQL: r.query, StartAt: startAt, MaxResults: r.opts.PageSize}
	page, err := recovery.RecoverToValue(logger, "fetch", func() (*Page[T], error) {
		return r.fetch(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("paging: fetch at %d: %w", startAt, err)
	}
	if page == nil {
		return nil, fmt.Errorf("paging: fetch at %d: %w", startAt, ErrNilPage)
	}

	logger.Debug("Page fetched",
		"start_at", startAt,
		"items", len(page.Items),
		"total", page.Total,
	)
	return page, nil
}
