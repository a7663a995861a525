// Package repository contains the read-only data access abstractions for
// statute records. Backends live in subpackages (postgres, postgrest) and a
// caching decorator lives in cached.
package repository

import (
	"context"
	"errors"

	"statutes/internal/model"
)

// PageSize is the fixed number of rows per page.
const PageSize = 100

var (
	// ErrNotFound is returned by FindByID when no row has the identifier.
	ErrNotFound = errors.New("statute not found")
	// ErrEmptySelection is returned when a filter names no jurisdictions.
	ErrEmptySelection = errors.New("at least one jurisdiction is required")
)

// StatuteRepository is the remote store surface. Implementations only read.
type StatuteRepository interface {
	// Jurisdictions returns the distinct jurisdiction codes of rows with the
	// given record type, sorted ascending. An empty store yields an empty slice.
	Jurisdictions(ctx context.Context, recordType string) ([]string, error)

	// Count returns how many rows match the filter, ignoring pagination.
	Count(ctx context.Context, f StatuteFilter) (int, error)

	// Fetch returns the rows in [pq.Offset, pq.Offset+pq.Limit-1] in store order.
	Fetch(ctx context.Context, f StatuteFilter, pq PageQuery) ([]model.RawStatute, error)

	// FindByID returns the first row with the identifier or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.RawStatute, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// Last returns the inclusive index of the last requested row.
func (pq PageQuery) Last() int {
	return pq.Offset + pq.Limit - 1
}
