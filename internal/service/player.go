package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
)

type playerService struct {
	players repository.PlayerRepository
	log     zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, log: l}
}

func validatePlayer(p model.Player) []FieldError {
	var ferrs []FieldError
	if p.Name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if ln := len([]rune(p.Name)); ln > 100 {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be <= 100"})
	}
	if ln := len([]rune(p.Team)); ln > 100 {
		ferrs = append(ferrs, FieldError{Field: "team", Message: "length must be <= 100"})
	}
	return ferrs
}

func (s *playerService) CreatePlayer(ctx context.Context, p model.Player) (model.Player, error) {
	if err := requireNoID(p.ID); err != nil {
		return model.Player{}, err
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Team = strings.TrimSpace(p.Team)
	if ferrs := validatePlayer(p); len(ferrs) > 0 {
		s.log.Debug().Interface("field_errors", ferrs).Msg("player validation failed")
		return model.Player{}, NewInvalidInputError(ferrs)
	}
	out, err := s.players.Create(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Str("name", p.Name).Msg("create player failed")
		return model.Player{}, err
	}
	return out, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, p model.Player) (model.Player, error) {
	if err := requireID(p.ID); err != nil {
		return model.Player{}, err
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Team = strings.TrimSpace(p.Team)
	if ferrs := validatePlayer(p); len(ferrs) > 0 {
		return model.Player{}, NewInvalidInputError(ferrs)
	}
	out, err := s.players.Update(ctx, p)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("player_id", p.ID).Msg("update player failed")
		}
		return model.Player{}, err
	}
	return out, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int64) (model.Player, error) {
	if err := requireID(id); err != nil {
		return model.Player{}, err
	}
	return s.players.GetByID(ctx, id)
}

func (s *playerService) ListPlayers(ctx context.Context, page repository.Page) (repository.PageResult[model.Player], error) {
	p := normalizePage(page)
	res, err := s.players.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list players failed")
		return repository.PageResult[model.Player]{}, err
	}
	return res, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int64) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.players.Delete(ctx, id)
}
