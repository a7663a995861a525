package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"statutes/internal/model"
	"statutes/internal/repository"
)

// StatutePostgres is a PostgreSQL implementation of repository.StatuteRepository.
// It reads the statute table through database/sql with parameterized queries.
type StatutePostgres struct {
	db              *sql.DB
	table           string
	jurisdictionCol string
}

// NewStatutePostgres creates a repository over table, reading jurisdiction
// codes from jurisdictionField.
func NewStatutePostgres(db *sql.DB, table, jurisdictionField string) *StatutePostgres {
	return &StatutePostgres{
		db:              db,
		table:           quoteIdent(table),
		jurisdictionCol: quoteIdent(jurisdictionField),
	}
}

var _ repository.StatuteRepository = (*StatutePostgres)(nil)

// Jurisdictions lists distinct jurisdiction codes for the record type.
func (r *StatutePostgres) Jurisdictions(ctx context.Context, recordType string) ([]string, error) {
	q := `SELECT DISTINCT ` + r.jurisdictionCol + ` FROM ` + r.table + ` WHERE "type" = $1`
	rows, err := r.db.QueryContext(ctx, q, recordType)
	if err != nil {
		return nil, fmt.Errorf("query jurisdictions: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var j sql.NullString
		if err := rows.Scan(&j); err != nil {
			return nil, fmt.Errorf("scan jurisdiction: %w", err)
		}
		if j.Valid {
			out = append(out, j.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jurisdictions: %w", err)
	}
	// Byte-wise order regardless of the database collation.
	slices.Sort(out)
	return out, nil
}

// Count returns the number of rows matching the filter.
func (r *StatutePostgres) Count(ctx context.Context, f repository.StatuteFilter) (int, error) {
	where, args := whereClause(f, r.jurisdictionCol)
	q := `SELECT COUNT(*) FROM ` + r.table + ` ` + where

	var total int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count statutes: %w", err)
	}
	return total, nil
}

// Fetch returns one page of rows in store order.
func (r *StatutePostgres) Fetch(ctx context.Context, f repository.StatuteFilter, pq repository.PageQuery) ([]model.RawStatute, error) {
	where, args := whereClause(f, r.jurisdictionCol)
	args = append(args, pq.Limit, pq.Offset)
	q := `SELECT id::text, ` + r.jurisdictionCol + `, properties FROM ` + r.table + ` ` + where +
		` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch statutes: %w", err)
	}
	defer rows.Close()

	items := make([]model.RawStatute, 0)
	for rows.Next() {
		raw, err := scanStatute(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statutes: %w", err)
	}
	return items, nil
}

// FindByID fetches the first row with the identifier.
func (r *StatutePostgres) FindByID(ctx context.Context, id string) (*model.RawStatute, error) {
	q := `SELECT id::text, ` + r.jurisdictionCol + `, properties FROM ` + r.table + ` WHERE id::text = $1 LIMIT 1`

	raw, err := scanStatute(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

// Ping verifies connectivity.
func (r *StatutePostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStatute(s scanner) (*model.RawStatute, error) {
	var (
		id, jurisdiction sql.NullString
		props            []byte
	)
	if err := s.Scan(&id, &jurisdiction, &props); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan statute: %w", err)
	}

	raw := &model.RawStatute{ID: model.ID(id.String), Jurisdiction: jurisdiction.String}
	if len(props) > 0 {
		if err := json.Unmarshal(props, &raw.Properties); err != nil {
			return nil, fmt.Errorf("decode properties of statute %s: %w", id.String, err)
		}
	}
	return raw, nil
}
