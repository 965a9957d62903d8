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

	"github.com/stucom/basketball-fans-service/internal/handler"
	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
	"github.com/stucom/basketball-fans-service/internal/service"
)

type stubGameService struct {
	createFn func(ctx context.Context, g model.Game) (model.Game, error)
	updateFn func(ctx context.Context, g model.Game) (model.Game, error)
	getFn    func(ctx context.Context, id int64) (model.Game, error)
	listFn   func(ctx context.Context, page repository.Page) (repository.PageResult[model.Game], error)
}

func (s *stubGameService) CreateGame(ctx context.Context, g model.Game) (model.Game, error) {
	return s.createFn(ctx, g)
}

func (s *stubGameService) UpdateGame(ctx context.Context, g model.Game) (model.Game, error) {
	return s.updateFn(ctx, g)
}

func (s *stubGameService) GetGame(ctx context.Context, id int64) (model.Game, error) {
	return s.getFn(ctx, id)
}

func (s *stubGameService) ListGames(ctx context.Context, page repository.Page) (repository.PageResult[model.Game], error) {
	return s.listFn(ctx, page)
}

func (s *stubGameService) DeleteGame(context.Context, int64) error { return nil }

var _ service.GameService = (*stubGameService)(nil)

func newGameRouter(svc service.GameService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group(handler.APIPrefix)
	handler.NewGameHandler(svc).Register(api)
	return r
}

func TestGameCreate(t *testing.T) {
	svc := &stubGameService{
		createFn: func(_ context.Context, g model.Game) (model.Game, error) {
			require.Equal(t, "Season opener", g.Name)
			require.NotNil(t, g.DateInit)
			g.ID = 3
			return g, nil
		},
	}
	r := newGameRouter(svc)

	rec := httptest.NewRecorder()
	body := `{"name":"Season opener","local_score":88,"visitor_score":84,"date_init":"2026-01-10T18:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/games/3", rec.Header().Get("Location"))
	assert.Equal(t, "basketballApp.game.created", rec.Header().Get("X-basketballApp-alert"))
}

func TestGameCreate_BadDate(t *testing.T) {
	svc := &stubGameService{
		createFn: func(context.Context, model.Game) (model.Game, error) {
			t.Fatal("service must not be reached on a malformed date")
			return model.Game{}, nil
		},
	}
	r := newGameRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader(`{"name":"x","date_init":"yesterday"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "date_init")
}

func TestGameCreate_PresetID(t *testing.T) {
	svc := &stubGameService{
		createFn: func(context.Context, model.Game) (model.Game, error) {
			return model.Game{}, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "a new entity cannot already have an id"}})
		},
	}
	r := newGameRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader(`{"id":9,"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error.idexists", rec.Header().Get("X-basketballApp-error"))
}

func TestGameUpdate_WithoutIDCreates(t *testing.T) {
	svc := &stubGameService{
		createFn: func(_ context.Context, g model.Game) (model.Game, error) {
			g.ID = 8
			return g, nil
		},
	}
	r := newGameRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/games", strings.NewReader(`{"name":"derby"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/games/8", rec.Header().Get("Location"))
}

func TestGameGet_NotFound(t *testing.T) {
	svc := &stubGameService{
		getFn: func(context.Context, int64) (model.Game, error) {
			return model.Game{}, repository.ErrNotFound
		},
	}
	r := newGameRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/games/404", nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestGameList_PaginationHeaders(t *testing.T) {
	svc := &stubGameService{
		listFn: func(_ context.Context, page repository.Page) (repository.PageResult[model.Game], error) {
			require.Equal(t, 10, page.Limit)
			require.Equal(t, 10, page.Offset)
			return repository.PageResult[model.Game]{
				Items: []model.Game{{ID: 11, Name: "a"}, {ID: 12, Name: "b"}},
				Total: 35,
			}, nil
		},
	}
	r := newGameRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/games?limit=10&offset=10", nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "35", rec.Header().Get("X-Total-Count"))
	assert.Contains(t, rec.Header().Get("Link"), `rel="next"`)
	assert.Contains(t, rec.Header().Get("Link"), `rel="prev"`)
}

func TestGameDelete(t *testing.T) {
	r := newGameRouter(&stubGameService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/games/6", nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "basketballApp.game.deleted", rec.Header().Get("X-basketballApp-alert"))
}
