package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
)

type gameService struct {
	games repository.GameRepository
	tx    repository.TxManager
	log   zerolog.Logger
}

func NewGameService(games repository.GameRepository, tx repository.TxManager, logger zerolog.Logger) GameService {
	l := logger.With().Str("module", "service").Str("component", "game").Logger()
	return &gameService{games: games, tx: tx, log: l}
}

func validateGame(g model.Game) []FieldError {
	var ferrs []FieldError
	name := strings.TrimSpace(g.Name)
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if ln := len([]rune(name)); ln > 100 {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be <= 100"})
	}
	if g.LocalScore < 0 {
		ferrs = append(ferrs, FieldError{Field: "local_score", Message: "must be >= 0"})
	}
	if g.VisitorScore < 0 {
		ferrs = append(ferrs, FieldError{Field: "visitor_score", Message: "must be >= 0"})
	}
	if g.DateInit != nil && g.DateFinal != nil && g.DateFinal.Before(*g.DateInit) {
		ferrs = append(ferrs, FieldError{Field: "date_final", Message: "must not precede date_init"})
	}
	return ferrs
}

func (s *gameService) CreateGame(ctx context.Context, g model.Game) (model.Game, error) {
	if err := requireNoID(g.ID); err != nil {
		return model.Game{}, err
	}
	g.Name = strings.TrimSpace(g.Name)
	if ferrs := validateGame(g); len(ferrs) > 0 {
		s.log.Debug().Interface("field_errors", ferrs).Msg("game validation failed")
		return model.Game{}, NewInvalidInputError(ferrs)
	}

	// One INSERT; the transaction boundary stays for when accompanying
	// records appear.
	var out model.Game
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.games.Create(ctx, g)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("name", g.Name).Msg("create game failed")
		return model.Game{}, err
	}
	return out, nil
}

func (s *gameService) UpdateGame(ctx context.Context, g model.Game) (model.Game, error) {
	if err := requireID(g.ID); err != nil {
		return model.Game{}, err
	}
	g.Name = strings.TrimSpace(g.Name)
	if ferrs := validateGame(g); len(ferrs) > 0 {
		return model.Game{}, NewInvalidInputError(ferrs)
	}
	out, err := s.games.Update(ctx, g)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("game_id", g.ID).Msg("update game failed")
		}
		return model.Game{}, err
	}
	return out, nil
}

func (s *gameService) GetGame(ctx context.Context, id int64) (model.Game, error) {
	if err := requireID(id); err != nil {
		return model.Game{}, err
	}
	return s.games.GetByID(ctx, id)
}

func (s *gameService) ListGames(ctx context.Context, page repository.Page) (repository.PageResult[model.Game], error) {
	p := normalizePage(page)
	res, err := s.games.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list games failed")
		return repository.PageResult[model.Game]{}, err
	}
	return res, nil
}

func (s *gameService) DeleteGame(ctx context.Context, id int64) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.games.Delete(ctx, id)
}
