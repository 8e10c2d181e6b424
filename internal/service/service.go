// Package service holds the library workflows. Each workflow checks
// existence and uniqueness through its repositories before writing and
// reports client failures as *Error values; everything else is an
// infrastructure error wrapped with context.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/snnyvrz/library-api/internal/cache"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
)

const (
	authorsCollection   = "authors"
	booksCollection     = "books"
	customersCollection = "customers"
	recordsCollection   = "records"
)

// Page is one page of a sorted listing.
type Page[T any] struct {
	Items  []T
	Number int
	Size   int
	Field  string
	Total  int64
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

type pager[T any] interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, page repository.PageRequest) ([]T, error)
}

// listPage counts the whole collection before paginating, so an empty
// store is NotFound while a page past the end is an empty page.
func listPage[T any](ctx context.Context, c cache.Cache, collection string, repo pager[T], number, size int, field, emptyMsg string) (Page[T], error) {
	page := repository.NewPageRequest(number, size, field)
	key := cache.Key(collection, "list", page.Number, page.Size, page.Field)

	return cache.GetOrFetch(ctx, c, key, func(ctx context.Context) (Page[T], error) {
		total, err := repo.Count(ctx)
		if err != nil {
			return Page[T]{}, fmt.Errorf("count %s: %w", collection, err)
		}
		if total == 0 {
			return Page[T]{}, NotFound(emptyMsg)
		}

		items, err := repo.List(ctx, page)
		if err != nil {
			if errors.Is(err, repository.ErrUnknownSortField) {
				return Page[T]{}, InvalidRequestf("Unknown sort field: %s", page.Field)
			}
			return Page[T]{}, fmt.Errorf("list %s: %w", collection, err)
		}

		return Page[T]{
			Items:  items,
			Number: page.Number,
			Size:   page.Size,
			Field:  page.Field,
			Total:  total,
		}, nil
	})
}

func getByID[T any](ctx context.Context, c cache.Cache, collection string, find func(context.Context, uint) (*T, error), id uint, notFoundMsg string) (*T, error) {
	v, err := cache.GetOrFetch(ctx, c, cache.Key(collection, "id", id), func(ctx context.Context) (T, error) {
		item, err := find(ctx, id)
		if err != nil {
			var zero T
			if errors.Is(err, repository.ErrNotFound) {
				return zero, NotFound(notFoundMsg)
			}
			return zero, fmt.Errorf("find %s %d: %w", collection, id, err)
		}
		return *item, nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func invalidate(c cache.Cache, collections ...string) {
	for _, name := range collections {
		c.InvalidatePrefix(cache.Collection(name))
	}
}

func parseDate(field, value string) (time.Time, error) {
	d, err := model.ParseDate(value)
	if err != nil {
		return time.Time{}, InvalidRequestf("%s must be a valid date in the format YYYY-MM-DD, got %q", field, value)
	}
	return d, nil
}

func orNoop(c cache.Cache) cache.Cache {
	if c == nil {
		return cache.Noop{}
	}
	return c
}
