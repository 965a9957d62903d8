package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
)

// topGamesLimit caps the top-games ranking. The top-players ranking is
// deliberately uncapped; the two endpoints never shared a truncation policy.
const topGamesLimit = 5

type ratingService struct {
	ratings repository.RatingRepository
	games   repository.GameRepository
	users   repository.UserRepository
	log     zerolog.Logger
}

func NewRatingService(ratings repository.RatingRepository, games repository.GameRepository, users repository.UserRepository, logger zerolog.Logger) RatingService {
	l := logger.With().Str("module", "service").Str("component", "rating").Logger()
	return &ratingService{ratings: ratings, games: games, users: users, log: l}
}

// RateGame is the upsert flow: guard the preset id, check the game, resolve
// the current user, then let the store do an atomic insert-or-overwrite keyed
// by (user, game). Last write wins on the update path.
func (s *ratingService) RateGame(ctx context.Context, login string, sub RatingSubmission) (model.RatingResult, error) {
	// Preset ids fail first, regardless of score or game validity.
	if err := requireNoID(sub.ID); err != nil {
		return model.RatingResult{}, err
	}

	var ferrs []FieldError
	if sub.GameID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "game_id", Message: "must be > 0"})
	}
	if sub.Score < 0 {
		ferrs = append(ferrs, FieldError{Field: "score", Message: "must be >= 0"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("rating validation failed")
		return model.RatingResult{}, err
	}

	if exists, err := s.games.Exists(ctx, sub.GameID); err != nil {
		return model.RatingResult{}, err
	} else if !exists {
		return model.RatingResult{}, repository.ErrNotFound
	}

	user, err := s.resolveUser(ctx, login)
	if err != nil {
		return model.RatingResult{}, err
	}

	res, err := s.ratings.Upsert(ctx, model.GameRating{
		Score:         sub.Score,
		ScoreDateTime: time.Now().UTC(),
		UserID:        user.ID,
		GameID:        sub.GameID,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("game_id", sub.GameID).Str("login", login).Msg("rating upsert failed")
		return model.RatingResult{}, err
	}
	s.log.Info().
		Int64("rating_id", res.Rating.ID).
		Int64("game_id", sub.GameID).
		Bool("created", res.Created).
		Msg("game rated")
	return res, nil
}

// UpdateRating overwrites the score of an existing vote by id. The owning
// user is untouched; only score and timestamp move.
func (s *ratingService) UpdateRating(ctx context.Context, id int64, score int) (model.GameRating, error) {
	if err := requireID(id); err != nil {
		return model.GameRating{}, err
	}
	if score < 0 {
		return model.GameRating{}, NewInvalidInputError([]FieldError{{Field: "score", Message: "must be >= 0"}})
	}
	out, err := s.ratings.Update(ctx, model.GameRating{ID: id, Score: score, ScoreDateTime: time.Now().UTC()})
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("rating_id", id).Msg("rating update failed")
		}
		return model.GameRating{}, err
	}
	return out, nil
}

func (s *ratingService) GetRating(ctx context.Context, id int64) (model.GameRating, error) {
	if err := requireID(id); err != nil {
		return model.GameRating{}, err
	}
	return s.ratings.GetByID(ctx, id)
}

func (s *ratingService) ListRatings(ctx context.Context, page repository.Page) (repository.PageResult[model.GameRating], error) {
	p := normalizePage(page)
	res, err := s.ratings.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list ratings failed")
		return repository.PageResult[model.GameRating]{}, err
	}
	return res, nil
}

func (s *ratingService) ListRatingsByUser(ctx context.Context, login string) ([]model.GameRating, error) {
	user, err := s.resolveUser(ctx, login)
	if err != nil {
		return nil, err
	}
	return s.ratings.ListByUser(ctx, user.ID)
}

// DeleteRating is idempotent: removing an absent vote succeeds.
func (s *ratingService) DeleteRating(ctx context.Context, id int64) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.ratings.Delete(ctx, id)
}

// AvgGameRating returns the game plus the mean of its scores. A game with no
// ratings has a nil average, never zero.
func (s *ratingService) AvgGameRating(ctx context.Context, gameID int64) (model.GameAverage, error) {
	if err := requireID(gameID); err != nil {
		return model.GameAverage{}, err
	}
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return model.GameAverage{}, err
	}
	avg, err := s.ratings.AvgScoreByGame(ctx, gameID)
	if err != nil {
		s.log.Error().Err(err).Int64("game_id", gameID).Msg("avg rating query failed")
		return model.GameAverage{}, err
	}
	return model.GameAverage{Game: game, AvgScore: avg}, nil
}

func (s *ratingService) TopGames(ctx context.Context) ([]model.GameRating, error) {
	return s.ratings.TopByScore(ctx, topGamesLimit)
}

// resolveUser turns the explicit login parameter into a stored account.
// An empty login or an unknown one both mean no authenticated user.
func (s *ratingService) resolveUser(ctx context.Context, login string) (model.User, error) {
	if login == "" {
		return model.User{}, ErrAuthRequired
	}
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, ErrAuthRequired
		}
		return model.User{}, err
	}
	return user, nil
}
