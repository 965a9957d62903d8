// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrAuthRequired signals an operation that needs a current user when none is
// authenticated (maps to HTTP 401). The current login is always an explicit
// parameter; there is no ambient security context.
var ErrAuthRequired = errors.New("authentication required")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// GameService defines game-oriented use cases.
type GameService interface {
	CreateGame(ctx context.Context, g model.Game) (model.Game, error)
	UpdateGame(ctx context.Context, g model.Game) (model.Game, error)
	GetGame(ctx context.Context, id int64) (model.Game, error)
	ListGames(ctx context.Context, page repository.Page) (repository.PageResult[model.Game], error)
	DeleteGame(ctx context.Context, id int64) error
}

// PlayerService defines player-oriented use cases.
type PlayerService interface {
	CreatePlayer(ctx context.Context, p model.Player) (model.Player, error)
	UpdatePlayer(ctx context.Context, p model.Player) (model.Player, error)
	GetPlayer(ctx context.Context, id int64) (model.Player, error)
	ListPlayers(ctx context.Context, page repository.Page) (repository.PageResult[model.Player], error)
	DeletePlayer(ctx context.Context, id int64) error
}

// RatingSubmission is the client payload for voting on a game.
// ID travels only so the preset-id guard can reject it.
type RatingSubmission struct {
	ID     int64
	Score  int
	GameID int64
}

// RatingService defines the rating use cases, upsert and aggregates included.
type RatingService interface {
	// RateGame upserts the current user's vote for a game. The result's
	// Created flag tells a new vote (201) from an overwritten one (200).
	RateGame(ctx context.Context, login string, sub RatingSubmission) (model.RatingResult, error)
	UpdateRating(ctx context.Context, id int64, score int) (model.GameRating, error)
	GetRating(ctx context.Context, id int64) (model.GameRating, error)
	ListRatings(ctx context.Context, page repository.Page) (repository.PageResult[model.GameRating], error)
	ListRatingsByUser(ctx context.Context, login string) ([]model.GameRating, error)
	DeleteRating(ctx context.Context, id int64) error
	AvgGameRating(ctx context.Context, gameID int64) (model.GameAverage, error)
	TopGames(ctx context.Context) ([]model.GameRating, error)
}

// FavouriteService defines the favourite-player use cases.
type FavouriteService interface {
	AddFavourite(ctx context.Context, login string, presetID, playerID int64) (model.FavouritePlayer, error)
	UpdateFavourite(ctx context.Context, f model.FavouritePlayer) (model.FavouritePlayer, error)
	GetFavourite(ctx context.Context, id int64) (model.FavouritePlayer, error)
	ListFavourites(ctx context.Context, page repository.Page) (repository.PageResult[model.FavouritePlayer], error)
	ListFavouritesByUser(ctx context.Context, login string) ([]model.FavouritePlayer, error)
	DeleteFavourite(ctx context.Context, id int64) error
	TopPlayers(ctx context.Context) ([]model.PlayerFavourites, error)
}
