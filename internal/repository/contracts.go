package repository

import (
	"context"

	"github.com/stucom/basketball-fans-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// GameRepository declares persistence operations for games.
// I return domain models and surface domain errors from errors.go rather than PG codes.
type GameRepository interface {
	Create(ctx context.Context, g model.Game) (model.Game, error)
	Update(ctx context.Context, g model.Game) (model.Game, error)
	GetByID(ctx context.Context, id int64) (model.Game, error)
	List(ctx context.Context, p Page) (PageResult[model.Game], error)
	// Delete is idempotent: removing an absent id is not an error.
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// PlayerRepository declares persistence operations for players.
type PlayerRepository interface {
	Create(ctx context.Context, p model.Player) (model.Player, error)
	Update(ctx context.Context, p model.Player) (model.Player, error)
	GetByID(ctx context.Context, id int64) (model.Player, error)
	List(ctx context.Context, p Page) (PageResult[model.Player], error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// UserRepository is read-only: accounts are owned by the auth subsystem,
// we only resolve the login carried in tokens to a stored row.
type UserRepository interface {
	GetByLogin(ctx context.Context, login string) (model.User, error)
}

// RatingRepository declares operations for per-user game ratings.
type RatingRepository interface {
	// Upsert inserts a vote or overwrites the existing one for the same
	// (user, game) pair in a single atomic statement. The returned Created
	// flag discriminates the insert path from the update path.
	Upsert(ctx context.Context, r model.GameRating) (model.RatingResult, error)
	Update(ctx context.Context, r model.GameRating) (model.GameRating, error)
	GetByID(ctx context.Context, id int64) (model.GameRating, error)
	List(ctx context.Context, p Page) (PageResult[model.GameRating], error)
	ListByUser(ctx context.Context, userID int64) ([]model.GameRating, error)
	Delete(ctx context.Context, id int64) error
	// AvgScoreByGame returns nil when the game has no ratings.
	AvgScoreByGame(ctx context.Context, gameID int64) (*float64, error)
	// TopByScore returns at most limit ratings ordered by score descending.
	TopByScore(ctx context.Context, limit int) ([]model.GameRating, error)
}

// FavouriteRepository declares operations for favourite-player marks.
type FavouriteRepository interface {
	Create(ctx context.Context, f model.FavouritePlayer) (model.FavouritePlayer, error)
	Update(ctx context.Context, f model.FavouritePlayer) (model.FavouritePlayer, error)
	GetByID(ctx context.Context, id int64) (model.FavouritePlayer, error)
	List(ctx context.Context, p Page) (PageResult[model.FavouritePlayer], error)
	ListByUser(ctx context.Context, userID int64) ([]model.FavouritePlayer, error)
	Delete(ctx context.Context, id int64) error
	// TopPlayers ranks players by favourite count, descending. The full
	// ranking is returned; only the games ranking is truncated.
	TopPlayers(ctx context.Context) ([]model.PlayerFavourites, error)
}
