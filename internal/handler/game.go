package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
	"github.com/stucom/basketball-fans-service/internal/service"
	"github.com/stucom/basketball-fans-service/pkg/response"
)

const gameEntity = "game"

type GameHandler struct {
	svc service.GameService
}

func NewGameHandler(svc service.GameService) *GameHandler { return &GameHandler{svc: svc} }

func (h *GameHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/games")
	{
		g.POST("", h.create)
		g.PUT("", h.update)
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
		g.DELETE("/:id", h.deleteByID)
	}
}

type gameRequest struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	LocalScore   int    `json:"local_score"`
	VisitorScore int    `json:"visitor_score"`
	DateInit     string `json:"date_init"`  // RFC3339, optional
	DateFinal    string `json:"date_final"` // RFC3339, optional
}

func (r gameRequest) toModel() (model.Game, error) {
	g := model.Game{
		ID:           r.ID,
		Name:         r.Name,
		LocalScore:   r.LocalScore,
		VisitorScore: r.VisitorScore,
	}
	var ferrs []service.FieldError
	if r.DateInit != "" {
		t, err := time.Parse(time.RFC3339, r.DateInit)
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: "date_init", Message: "must be RFC3339"})
		} else {
			g.DateInit = &t
		}
	}
	if r.DateFinal != "" {
		t, err := time.Parse(time.RFC3339, r.DateFinal)
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: "date_final", Message: "must be RFC3339"})
		} else {
			g.DateFinal = &t
		}
	}
	if err := service.NewInvalidInputError(ferrs); err != nil {
		return model.Game{}, err
	}
	return g, nil
}

func (h *GameHandler) create(c *gin.Context) {
	var req gameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	h.createFromRequest(c, req)
}

func (h *GameHandler) createFromRequest(c *gin.Context, req gameRequest) {
	g, err := req.toModel()
	if err != nil {
		response.WriteError(c, err)
		return
	}
	game, err := h.svc.CreateGame(c.Request.Context(), g)
	if err != nil {
		if req.ID != 0 && errors.Is(err, service.ErrInvalidInput) {
			response.SetFailureAlert(c, gameEntity, "idexists")
		}
		response.WriteError(c, err)
		return
	}
	response.SetLocation(c, APIPrefix+"/games", game.ID)
	response.SetCreationAlert(c, gameEntity, strconv.FormatInt(game.ID, 10))
	response.WriteData(c, http.StatusCreated, game)
}

func (h *GameHandler) update(c *gin.Context) {
	var req gameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	if req.ID == 0 {
		h.createFromRequest(c, req)
		return
	}
	g, err := req.toModel()
	if err != nil {
		response.WriteError(c, err)
		return
	}
	game, err := h.svc.UpdateGame(c.Request.Context(), g)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.SetUpdateAlert(c, gameEntity, strconv.FormatInt(game.ID, 10))
	response.WriteData(c, http.StatusOK, game)
}

func (h *GameHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.svc.ListGames(c.Request.Context(), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WritePage(c, res.Items, res.Total, limit, offset, APIPrefix+"/games")
}

func (h *GameHandler) getByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	game, err := h.svc.GetGame(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

func (h *GameHandler) deleteByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.svc.DeleteGame(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	response.SetDeletionAlert(c, gameEntity, strconv.FormatInt(id, 10))
	c.Status(http.StatusOK)
}
