package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
)

type favouriteRepository struct{ pool *pgxpool.Pool }

func NewFavouriteRepository(pool *pgxpool.Pool) repository.FavouriteRepository {
	return &favouriteRepository{pool: pool}
}

func (r *favouriteRepository) Create(ctx context.Context, f model.FavouritePlayer) (model.FavouritePlayer, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.FavouritePlayer{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO favourite_players (favourite_date_time, user_id, player_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, favourite_date_time, user_id, player_id`,
		f.FavouriteDateTime, f.UserID, f.PlayerID,
	)
	var out model.FavouritePlayer
	if err := row.Scan(&out.ID, &out.FavouriteDateTime, &out.UserID, &out.PlayerID); err != nil {
		return model.FavouritePlayer{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *favouriteRepository) Update(ctx context.Context, f model.FavouritePlayer) (model.FavouritePlayer, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.FavouritePlayer{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE favourite_players
		 SET favourite_date_time = $2, player_id = $3
		 WHERE id = $1
		 RETURNING id, favourite_date_time, user_id, player_id`,
		f.ID, f.FavouriteDateTime, f.PlayerID,
	)
	var out model.FavouritePlayer
	if err := row.Scan(&out.ID, &out.FavouriteDateTime, &out.UserID, &out.PlayerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FavouritePlayer{}, repository.ErrNotFound
		}
		return model.FavouritePlayer{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *favouriteRepository) GetByID(ctx context.Context, id int64) (model.FavouritePlayer, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.FavouritePlayer{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, favourite_date_time, user_id, player_id FROM favourite_players WHERE id = $1`, id,
	)
	var out model.FavouritePlayer
	if err := row.Scan(&out.ID, &out.FavouriteDateTime, &out.UserID, &out.PlayerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FavouritePlayer{}, repository.ErrNotFound
		}
		return model.FavouritePlayer{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *favouriteRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.FavouritePlayer], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.FavouritePlayer]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, favourite_date_time, user_id, player_id, COUNT(*) OVER() AS total
		 FROM favourite_players
		 ORDER BY id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.FavouritePlayer]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.FavouritePlayer]{Items: make([]model.FavouritePlayer, 0, limit)}
	for rows.Next() {
		var it model.FavouritePlayer
		var total int
		if err := rows.Scan(&it.ID, &it.FavouriteDateTime, &it.UserID, &it.PlayerID, &total); err != nil {
			return repository.PageResult[model.FavouritePlayer]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	return res, nil
}

func (r *favouriteRepository) ListByUser(ctx context.Context, userID int64) ([]model.FavouritePlayer, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, favourite_date_time, user_id, player_id
		 FROM favourite_players WHERE user_id = $1 ORDER BY id`, userID,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	res := make([]model.FavouritePlayer, 0, 8)
	for rows.Next() {
		var it model.FavouritePlayer
		if err := rows.Scan(&it.ID, &it.FavouriteDateTime, &it.UserID, &it.PlayerID); err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, it)
	}
	return res, nil
}

func (r *favouriteRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM favourite_players WHERE id = $1`, id); err != nil {
		return repository.MapPgError(err)
	}
	return nil
}

// TopPlayers returns the whole ranking; only the games ranking is capped.
func (r *favouriteRepository) TopPlayers(ctx context.Context) ([]model.PlayerFavourites, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT p.id, p.name, p.team, p.created_at, p.updated_at, COUNT(f.id) AS num_favs
		 FROM favourite_players f
		 JOIN players p ON p.id = f.player_id
		 GROUP BY p.id, p.name, p.team, p.created_at, p.updated_at
		 ORDER BY num_favs DESC, p.id ASC`,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	res := make([]model.PlayerFavourites, 0, 8)
	for rows.Next() {
		var it model.PlayerFavourites
		if err := rows.Scan(&it.Player.ID, &it.Player.Name, &it.Player.Team, &it.Player.CreatedAt, &it.Player.UpdatedAt, &it.NumFavs); err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, it)
	}
	return res, nil
}

var _ repository.FavouriteRepository = (*favouriteRepository)(nil)
