package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stucom/basketball-fans-service/internal/auth"
	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
	"github.com/stucom/basketball-fans-service/internal/service"
	"github.com/stucom/basketball-fans-service/pkg/response"
)

const favouriteEntity = "favouritePlayer"

type FavouriteHandler struct {
	svc service.FavouriteService
}

func NewFavouriteHandler(svc service.FavouriteService) *FavouriteHandler {
	return &FavouriteHandler{svc: svc}
}

func (h *FavouriteHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/favourite-players")
	{
		g.POST("", h.create)
		g.PUT("", h.update)
		g.GET("", h.list)
		g.GET("/by-current-user", h.listByCurrentUser)
		g.GET("/:id", h.getByID)
		g.DELETE("/:id", h.deleteByID)
	}
	r.GET("/top-players", h.topPlayers)
}

type favouriteRequest struct {
	ID       int64 `json:"id"`
	PlayerID int64 `json:"player_id"`
}

func (h *FavouriteHandler) create(c *gin.Context) {
	var req favouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	h.createFromRequest(c, req)
}

func (h *FavouriteHandler) createFromRequest(c *gin.Context, req favouriteRequest) {
	login, _ := auth.LoginFromContext(c)
	fav, err := h.svc.AddFavourite(c.Request.Context(), login, req.ID, req.PlayerID)
	if err != nil {
		if req.ID != 0 && errors.Is(err, service.ErrInvalidInput) {
			response.SetFailureAlert(c, favouriteEntity, "idexists")
		}
		response.WriteError(c, err)
		return
	}
	response.SetLocation(c, APIPrefix+"/favourite-players", fav.ID)
	response.SetCreationAlert(c, favouriteEntity, strconv.FormatInt(fav.ID, 10))
	response.WriteData(c, http.StatusCreated, fav)
}

func (h *FavouriteHandler) update(c *gin.Context) {
	var req favouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	if req.ID == 0 {
		h.createFromRequest(c, req)
		return
	}
	fav, err := h.svc.UpdateFavourite(c.Request.Context(), model.FavouritePlayer{ID: req.ID, PlayerID: req.PlayerID})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.SetUpdateAlert(c, favouriteEntity, strconv.FormatInt(fav.ID, 10))
	response.WriteData(c, http.StatusOK, fav)
}

func (h *FavouriteHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.svc.ListFavourites(c.Request.Context(), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WritePage(c, res.Items, res.Total, limit, offset, APIPrefix+"/favourite-players")
}

func (h *FavouriteHandler) listByCurrentUser(c *gin.Context) {
	login, _ := auth.LoginFromContext(c)
	favs, err := h.svc.ListFavouritesByUser(c.Request.Context(), login)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, favs)
}

func (h *FavouriteHandler) getByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	fav, err := h.svc.GetFavourite(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, fav)
}

// deleteByID is idempotent: an absent favourite still yields 200.
func (h *FavouriteHandler) deleteByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.svc.DeleteFavourite(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	response.SetDeletionAlert(c, favouriteEntity, strconv.FormatInt(id, 10))
	c.Status(http.StatusOK)
}

// topPlayers returns the full ranking; unlike topGames it is not truncated.
func (h *FavouriteHandler) topPlayers(c *gin.Context) {
	top, err := h.svc.TopPlayers(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, top)
}
