package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
)

type ratingRepository struct{ pool *pgxpool.Pool }

func NewRatingRepository(pool *pgxpool.Pool) repository.RatingRepository {
	return &ratingRepository{pool: pool}
}

// Upsert resolves the at-most-one-vote-per-(user, game) invariant in a single
// statement. Two concurrent submissions for the same pair serialize on the
// unique constraint instead of both inserting. The xmax trick discriminates
// the paths: a freshly inserted row has xmax = 0, a conflicted-and-updated
// row does not.
func (r *ratingRepository) Upsert(ctx context.Context, in model.GameRating) (model.RatingResult, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.RatingResult{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO game_ratings (score, score_date_time, user_id, game_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, game_id)
		 DO UPDATE SET
			score = EXCLUDED.score,
			score_date_time = EXCLUDED.score_date_time
		 RETURNING id, score, score_date_time, user_id, game_id, (xmax = 0) AS inserted`,
		in.Score, in.ScoreDateTime, in.UserID, in.GameID,
	)
	var out model.RatingResult
	if err := row.Scan(&out.Rating.ID, &out.Rating.Score, &out.Rating.ScoreDateTime, &out.Rating.UserID, &out.Rating.GameID, &out.Created); err != nil {
		return model.RatingResult{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *ratingRepository) Update(ctx context.Context, in model.GameRating) (model.GameRating, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.GameRating{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE game_ratings
		 SET score = $2, score_date_time = $3
		 WHERE id = $1
		 RETURNING id, score, score_date_time, user_id, game_id`,
		in.ID, in.Score, in.ScoreDateTime,
	)
	var out model.GameRating
	if err := row.Scan(&out.ID, &out.Score, &out.ScoreDateTime, &out.UserID, &out.GameID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.GameRating{}, repository.ErrNotFound
		}
		return model.GameRating{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id int64) (model.GameRating, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.GameRating{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, score, score_date_time, user_id, game_id FROM game_ratings WHERE id = $1`, id,
	)
	var out model.GameRating
	if err := row.Scan(&out.ID, &out.Score, &out.ScoreDateTime, &out.UserID, &out.GameID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.GameRating{}, repository.ErrNotFound
		}
		return model.GameRating{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *ratingRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.GameRating], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.GameRating]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, score, score_date_time, user_id, game_id, COUNT(*) OVER() AS total
		 FROM game_ratings
		 ORDER BY id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.GameRating]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.GameRating]{Items: make([]model.GameRating, 0, limit)}
	for rows.Next() {
		var it model.GameRating
		var total int
		if err := rows.Scan(&it.ID, &it.Score, &it.ScoreDateTime, &it.UserID, &it.GameID, &total); err != nil {
			return repository.PageResult[model.GameRating]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	return res, nil
}

func (r *ratingRepository) ListByUser(ctx context.Context, userID int64) ([]model.GameRating, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, score, score_date_time, user_id, game_id
		 FROM game_ratings WHERE user_id = $1 ORDER BY id`, userID,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	res := make([]model.GameRating, 0, 8)
	for rows.Next() {
		var it model.GameRating
		if err := rows.Scan(&it.ID, &it.Score, &it.ScoreDateTime, &it.UserID, &it.GameID); err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, it)
	}
	return res, nil
}

func (r *ratingRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM game_ratings WHERE id = $1`, id); err != nil {
		return repository.MapPgError(err)
	}
	return nil
}

// AvgScoreByGame keeps the "no ratings means no average" semantics: AVG over
// an empty set is NULL, which scans into a nil pointer rather than zero.
func (r *ratingRepository) AvgScoreByGame(ctx context.Context, gameID int64) (*float64, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	var avg *float64
	if err := exec.QueryRow(ctx,
		`SELECT AVG(score) FROM game_ratings WHERE game_id = $1`, gameID,
	).Scan(&avg); err != nil {
		return nil, repository.MapPgError(err)
	}
	return avg, nil
}

func (r *ratingRepository) TopByScore(ctx context.Context, limit int) ([]model.GameRating, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	exec := getQ(ctx, r.pool)
	// id ASC breaks score ties deterministically.
	rows, err := exec.Query(ctx,
		`SELECT id, score, score_date_time, user_id, game_id
		 FROM game_ratings
		 ORDER BY score DESC, id ASC
		 LIMIT $1`, limit,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	res := make([]model.GameRating, 0, limit)
	for rows.Next() {
		var it model.GameRating
		if err := rows.Scan(&it.ID, &it.Score, &it.ScoreDateTime, &it.UserID, &it.GameID); err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, it)
	}
	return res, nil
}

var _ repository.RatingRepository = (*ratingRepository)(nil)
