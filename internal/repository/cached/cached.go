// Package cached decorates a repository.StatuteRepository with a TTL memo.
package cached

import (
	"context"
	"strconv"

	"statutes/internal/cache"
	"statutes/internal/model"
	"statutes/internal/repository"
)

// Operation names used as the first half of memo keys.
const (
	OpJurisdictions = "jurisdictions"
	OpCount         = "count"
	OpFetch         = "fetch"
	OpFindByID      = "find_by_id"
)

// StatuteRepository memoizes reads of the wrapped repository.
type StatuteRepository struct {
	next repository.StatuteRepository
	memo *cache.Memo
}

// New wraps next. A nil memo or zero TTL passes every call through.
func New(next repository.StatuteRepository, memo *cache.Memo) *StatuteRepository {
	return &StatuteRepository{next: next, memo: memo}
}

var _ repository.StatuteRepository = (*StatuteRepository)(nil)

func (r *StatuteRepository) Jurisdictions(ctx context.Context, recordType string) ([]string, error) {
	return cache.Get(ctx, r.memo, OpJurisdictions, recordType, func(ctx context.Context) ([]string, error) {
		return r.next.Jurisdictions(ctx, recordType)
	})
}

func (r *StatuteRepository) Count(ctx context.Context, f repository.StatuteFilter) (int, error) {
	return cache.Get(ctx, r.memo, OpCount, f.Key(), func(ctx context.Context) (int, error) {
		return r.next.Count(ctx, f)
	})
}

func (r *StatuteRepository) Fetch(ctx context.Context, f repository.StatuteFilter, pq repository.PageQuery) ([]model.RawStatute, error) {
	key := f.Key() + ";offset=" + strconv.Itoa(pq.Offset) + ";limit=" + strconv.Itoa(pq.Limit)
	return cache.Get(ctx, r.memo, OpFetch, key, func(ctx context.Context) ([]model.RawStatute, error) {
		return r.next.Fetch(ctx, f, pq)
	})
}

// FindByID memoizes found rows only; ErrNotFound is returned as an error
// and therefore never cached.
func (r *StatuteRepository) FindByID(ctx context.Context, id string) (*model.RawStatute, error) {
	return cache.Get(ctx, r.memo, OpFindByID, id, func(ctx context.Context) (*model.RawStatute, error) {
		return r.next.FindByID(ctx, id)
	})
}

// Ping is never cached.
func (r *StatuteRepository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}
