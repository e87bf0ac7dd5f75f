// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/models"
)

type relationRepository struct {
	*DB
	logger *logger.Logger
}

func NewRelationRepository(db *DB, logger *logger.Logger) RelationRepository {
	return &relationRepository{
		DB:     db,
		logger: logger,
	}
}

func relationEq(from, to models.ItemRef) sq.Eq {
	return sq.Eq{
		"from_type": string(from.Type),
		"from_id":   from.ID,
		"to_type":   string(to.Type),
		"to_id":     to.ID,
	}
}

func (r *relationRepository) Add(ctx context.Context, from, to models.ItemRef) error {
	query, args, err := psql.Insert("relations").
		Columns("from_type", "from_id", "to_type", "to_id").
		Values(string(from.Type), from.ID, string(to.Type), to.ID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "relationRepository.Add", query, args)
}

func (r *relationRepository) Unlink(ctx context.Context, from, to models.ItemRef) error {
	query, args, err := psql.Delete("relations").Where(relationEq(from, to)).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "relationRepository.Unlink", query, args)
}

func (r *relationRepository) UnlinkAll(ctx context.Context, from models.ItemRef, toType models.ItemType) error {
	query, args, err := psql.Delete("relations").
		Where(sq.Eq{
			"from_type": string(from.Type),
			"from_id":   from.ID,
			"to_type":   string(toType),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "relationRepository.UnlinkAll", query, args)
}

func (r *relationRepository) From(ctx context.Context, from models.ItemRef, toType models.ItemType) ([]string, error) {
	return r.ids(ctx, "relationRepository.From", psql.Select("to_id").
		From("relations").
		Where(sq.Eq{
			"from_type": string(from.Type),
			"from_id":   from.ID,
			"to_type":   string(toType),
		}).
		OrderBy("rowid"))
}

func (r *relationRepository) To(ctx context.Context, to models.ItemRef, fromType models.ItemType) ([]string, error) {
	return r.ids(ctx, "relationRepository.To", psql.Select("from_id").
		From("relations").
		Where(sq.Eq{
			"to_type":   string(to.Type),
			"to_id":     to.ID,
			"from_type": string(fromType),
		}).
		OrderBy("rowid"))
}

func (r *relationRepository) Has(ctx context.Context, from, to models.ItemRef) (bool, error) {
	query, args, err := psql.Select("COUNT(1)").From("relations").Where(relationEq(from, to)).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err = r.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "relationRepository.Has").
			Str("from_id", from.ID).
			Str("to_id", to.ID).
			Msg("failed to check relation")
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return n > 0, nil
}

func (r *relationRepository) ids(ctx context.Context, fn string, b sq.SelectBuilder) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to query relations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			log.Err(err).Str("func", fn).Msg("failed to scan relation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		ids = append(ids, id)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", fn).Msg("error iterating relation rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return ids, nil
}

func (r *relationRepository) exec(ctx context.Context, fn, query string, args []any) error {
	if _, err := r.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to execute relation statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
