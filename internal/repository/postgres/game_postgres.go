package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
)

type gameRepository struct{ pool *pgxpool.Pool }

func NewGameRepository(pool *pgxpool.Pool) repository.GameRepository {
	return &gameRepository{pool: pool}
}

func (r *gameRepository) Create(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO games (name, local_score, visitor_score, date_init, date_final)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, local_score, visitor_score, date_init, date_final, created_at, updated_at`,
		g.Name, g.LocalScore, g.VisitorScore, g.DateInit, g.DateFinal,
	)
	var out model.Game
	if err := row.Scan(&out.ID, &out.Name, &out.LocalScore, &out.VisitorScore, &out.DateInit, &out.DateFinal, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) Update(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE games
		 SET name = $2, local_score = $3, visitor_score = $4, date_init = $5, date_final = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, name, local_score, visitor_score, date_init, date_final, created_at, updated_at`,
		g.ID, g.Name, g.LocalScore, g.VisitorScore, g.DateInit, g.DateFinal,
	)
	var out model.Game
	if err := row.Scan(&out.ID, &out.Name, &out.LocalScore, &out.VisitorScore, &out.DateInit, &out.DateFinal, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Game{}, repository.ErrNotFound
		}
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, name, local_score, visitor_score, date_init, date_final, created_at, updated_at
		 FROM games WHERE id = $1`, id,
	)
	var out model.Game
	if err := row.Scan(&out.ID, &out.Name, &out.LocalScore, &out.VisitorScore, &out.DateInit, &out.DateFinal, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Game{}, repository.ErrNotFound
		}
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Game], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Game]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, name, local_score, visitor_score, date_init, date_final, created_at, updated_at, COUNT(*) OVER() AS total
		 FROM games
		 ORDER BY id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Game]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Game]{Items: make([]model.Game, 0, limit)}
	for rows.Next() {
		var it model.Game
		var total int
		if err := rows.Scan(&it.ID, &it.Name, &it.LocalScore, &it.VisitorScore, &it.DateInit, &it.DateFinal, &it.CreatedAt, &it.UpdatedAt, &total); err != nil {
			return repository.PageResult[model.Game]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	return res, nil
}

func (r *gameRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	// Idempotent on purpose: deleting an absent row reports success.
	if _, err := exec.Exec(ctx, `DELETE FROM games WHERE id = $1`, id); err != nil {
		return repository.MapPgError(err)
	}
	return nil
}

func (r *gameRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	exec := getQ(ctx, r.pool)
	err := exec.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM games WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

var _ repository.GameRepository = (*gameRepository)(nil)
