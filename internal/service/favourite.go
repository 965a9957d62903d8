package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
)

type favouriteService struct {
	favourites repository.FavouriteRepository
	players    repository.PlayerRepository
	users      repository.UserRepository
	log        zerolog.Logger
}

func NewFavouriteService(favourites repository.FavouriteRepository, players repository.PlayerRepository, users repository.UserRepository, logger zerolog.Logger) FavouriteService {
	l := logger.With().Str("module", "service").Str("component", "favourite").Logger()
	return &favouriteService{favourites: favourites, players: players, users: users, log: l}
}

// AddFavourite always inserts a new row. Marking the same player twice is
// allowed; the pair carries no uniqueness constraint.
func (s *favouriteService) AddFavourite(ctx context.Context, login string, presetID, playerID int64) (model.FavouritePlayer, error) {
	if err := requireNoID(presetID); err != nil {
		return model.FavouritePlayer{}, err
	}
	if playerID <= 0 {
		return model.FavouritePlayer{}, NewInvalidInputError([]FieldError{{Field: "player_id", Message: "must be > 0"}})
	}

	if exists, err := s.players.Exists(ctx, playerID); err != nil {
		return model.FavouritePlayer{}, err
	} else if !exists {
		return model.FavouritePlayer{}, repository.ErrNotFound
	}

	user, err := s.resolveUser(ctx, login)
	if err != nil {
		return model.FavouritePlayer{}, err
	}

	out, err := s.favourites.Create(ctx, model.FavouritePlayer{
		FavouriteDateTime: time.Now().UTC(),
		UserID:            user.ID,
		PlayerID:          playerID,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("player_id", playerID).Str("login", login).Msg("add favourite failed")
		return model.FavouritePlayer{}, err
	}
	s.log.Info().Int64("favourite_id", out.ID).Int64("player_id", playerID).Msg("favourite added")
	return out, nil
}

func (s *favouriteService) UpdateFavourite(ctx context.Context, f model.FavouritePlayer) (model.FavouritePlayer, error) {
	if err := requireID(f.ID); err != nil {
		return model.FavouritePlayer{}, err
	}
	if f.PlayerID <= 0 {
		return model.FavouritePlayer{}, NewInvalidInputError([]FieldError{{Field: "player_id", Message: "must be > 0"}})
	}
	if f.FavouriteDateTime.IsZero() {
		f.FavouriteDateTime = time.Now().UTC()
	}
	out, err := s.favourites.Update(ctx, f)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("favourite_id", f.ID).Msg("favourite update failed")
		}
		return model.FavouritePlayer{}, err
	}
	return out, nil
}

func (s *favouriteService) GetFavourite(ctx context.Context, id int64) (model.FavouritePlayer, error) {
	if err := requireID(id); err != nil {
		return model.FavouritePlayer{}, err
	}
	return s.favourites.GetByID(ctx, id)
}

func (s *favouriteService) ListFavourites(ctx context.Context, page repository.Page) (repository.PageResult[model.FavouritePlayer], error) {
	p := normalizePage(page)
	res, err := s.favourites.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list favourites failed")
		return repository.PageResult[model.FavouritePlayer]{}, err
	}
	return res, nil
}

func (s *favouriteService) ListFavouritesByUser(ctx context.Context, login string) ([]model.FavouritePlayer, error) {
	user, err := s.resolveUser(ctx, login)
	if err != nil {
		return nil, err
	}
	return s.favourites.ListByUser(ctx, user.ID)
}

// DeleteFavourite is idempotent, matching the observed contract.
func (s *favouriteService) DeleteFavourite(ctx context.Context, id int64) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.favourites.Delete(ctx, id)
}

func (s *favouriteService) TopPlayers(ctx context.Context) ([]model.PlayerFavourites, error) {
	return s.favourites.TopPlayers(ctx)
}

func (s *favouriteService) resolveUser(ctx context.Context, login string) (model.User, error) {
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
