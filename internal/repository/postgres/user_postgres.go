package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
)

type userRepository struct{ pool *pgxpool.Pool }

// NewUserRepository resolves token logins to stored accounts. The table is
// populated by the auth subsystem; this service never writes to it.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (model.User, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.User{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT id, login FROM users WHERE login = $1`, login)
	var out model.User
	if err := row.Scan(&out.ID, &out.Login); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, repository.ErrNotFound
		}
		return model.User{}, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.UserRepository = (*userRepository)(nil)
