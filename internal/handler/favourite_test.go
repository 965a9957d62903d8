package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stucom/basketball-fans-service/internal/auth"
	"github.com/stucom/basketball-fans-service/internal/handler"
	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
	"github.com/stucom/basketball-fans-service/internal/service"
)

type stubFavouriteService struct {
	addFn    func(ctx context.Context, login string, presetID, playerID int64) (model.FavouritePlayer, error)
	byUserFn func(ctx context.Context, login string) ([]model.FavouritePlayer, error)
	topFn    func(ctx context.Context) ([]model.PlayerFavourites, error)
}

func (s *stubFavouriteService) AddFavourite(ctx context.Context, login string, presetID, playerID int64) (model.FavouritePlayer, error) {
	return s.addFn(ctx, login, presetID, playerID)
}

func (s *stubFavouriteService) UpdateFavourite(context.Context, model.FavouritePlayer) (model.FavouritePlayer, error) {
	return model.FavouritePlayer{}, repository.ErrNotFound
}

func (s *stubFavouriteService) GetFavourite(context.Context, int64) (model.FavouritePlayer, error) {
	return model.FavouritePlayer{}, repository.ErrNotFound
}

func (s *stubFavouriteService) ListFavourites(context.Context, repository.Page) (repository.PageResult[model.FavouritePlayer], error) {
	return repository.PageResult[model.FavouritePlayer]{}, nil
}

func (s *stubFavouriteService) ListFavouritesByUser(ctx context.Context, login string) ([]model.FavouritePlayer, error) {
	return s.byUserFn(ctx, login)
}

func (s *stubFavouriteService) DeleteFavourite(context.Context, int64) error { return nil }

func (s *stubFavouriteService) TopPlayers(ctx context.Context) ([]model.PlayerFavourites, error) {
	return s.topFn(ctx)
}

var _ service.FavouriteService = (*stubFavouriteService)(nil)

func newFavouriteRouter(svc service.FavouriteService, login string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if login != "" {
		r.Use(func(c *gin.Context) { auth.WithLogin(c, login) })
	}
	api := r.Group(handler.APIPrefix)
	handler.NewFavouriteHandler(svc).Register(api)
	return r
}

func TestFavouriteCreate(t *testing.T) {
	svc := &stubFavouriteService{
		addFn: func(_ context.Context, login string, presetID, playerID int64) (model.FavouritePlayer, error) {
			require.Equal(t, "bob", login)
			require.Zero(t, presetID)
			require.Equal(t, int64(7), playerID)
			return model.FavouritePlayer{ID: 2, UserID: 1, PlayerID: playerID}, nil
		},
	}
	r := newFavouriteRouter(svc, "bob")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/favourite-players", strings.NewReader(`{"player_id":7}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/favourite-players/2", rec.Header().Get("Location"))
	assert.Equal(t, "basketballApp.favouritePlayer.created", rec.Header().Get("X-basketballApp-alert"))
}

func TestFavouriteCreate_Unauthenticated(t *testing.T) {
	svc := &stubFavouriteService{
		addFn: func(_ context.Context, login string, _, _ int64) (model.FavouritePlayer, error) {
			require.Empty(t, login)
			return model.FavouritePlayer{}, service.ErrAuthRequired
		},
	}
	r := newFavouriteRouter(svc, "")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/favourite-players", strings.NewReader(`{"player_id":7}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFavouriteCreate_PlayerMissing(t *testing.T) {
	svc := &stubFavouriteService{
		addFn: func(context.Context, string, int64, int64) (model.FavouritePlayer, error) {
			return model.FavouritePlayer{}, repository.ErrNotFound
		},
	}
	r := newFavouriteRouter(svc, "bob")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/favourite-players", strings.NewReader(`{"player_id":404}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavouriteDelete_Idempotent(t *testing.T) {
	r := newFavouriteRouter(&stubFavouriteService{}, "bob")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/favourite-players/13", nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "basketballApp.favouritePlayer.deleted", rec.Header().Get("X-basketballApp-alert"))
	assert.Equal(t, "13", rec.Header().Get("X-basketballApp-params"))
}

func TestFavouriteListByCurrentUser(t *testing.T) {
	svc := &stubFavouriteService{
		byUserFn: func(_ context.Context, login string) ([]model.FavouritePlayer, error) {
			require.Equal(t, "bob", login)
			return []model.FavouritePlayer{{ID: 1, PlayerID: 7}, {ID: 2, PlayerID: 7}}, nil
		},
	}
	r := newFavouriteRouter(svc, "bob")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/favourite-players/by-current-user", nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"player_id":7`)
}

func TestTopPlayers(t *testing.T) {
	svc := &stubFavouriteService{
		topFn: func(context.Context) ([]model.PlayerFavourites, error) {
			return []model.PlayerFavourites{
				{Player: model.Player{ID: 7, Name: "Ricky"}, NumFavs: 3},
				{Player: model.Player{ID: 4, Name: "Pau"}, NumFavs: 1},
			}, nil
		},
	}
	r := newFavouriteRouter(svc, "")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/top-players", nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"num_favs":3`)
	assert.Contains(t, rec.Body.String(), "Ricky")
}
