package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stucom/basketball-fans-service/internal/model"
	"github.com/stucom/basketball-fans-service/internal/repository"
	"github.com/stucom/basketball-fans-service/internal/service"
	"github.com/stucom/basketball-fans-service/pkg/response"
)

const playerEntity = "player"

type PlayerHandler struct {
	svc service.PlayerService
}

func NewPlayerHandler(svc service.PlayerService) *PlayerHandler { return &PlayerHandler{svc: svc} }

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/players")
	{
		g.POST("", h.create)
		g.PUT("", h.update)
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
		g.DELETE("/:id", h.deleteByID)
	}
}

type playerRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Team string `json:"team"`
}

func (h *PlayerHandler) create(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	h.createFromRequest(c, req)
}

func (h *PlayerHandler) createFromRequest(c *gin.Context, req playerRequest) {
	player, err := h.svc.CreatePlayer(c.Request.Context(), model.Player{ID: req.ID, Name: req.Name, Team: req.Team})
	if err != nil {
		if req.ID != 0 && errors.Is(err, service.ErrInvalidInput) {
			response.SetFailureAlert(c, playerEntity, "idexists")
		}
		response.WriteError(c, err)
		return
	}
	response.SetLocation(c, APIPrefix+"/players", player.ID)
	response.SetCreationAlert(c, playerEntity, strconv.FormatInt(player.ID, 10))
	response.WriteData(c, http.StatusCreated, player)
}

func (h *PlayerHandler) update(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	if req.ID == 0 {
		h.createFromRequest(c, req)
		return
	}
	player, err := h.svc.UpdatePlayer(c.Request.Context(), model.Player{ID: req.ID, Name: req.Name, Team: req.Team})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.SetUpdateAlert(c, playerEntity, strconv.FormatInt(player.ID, 10))
	response.WriteData(c, http.StatusOK, player)
}

func (h *PlayerHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.svc.ListPlayers(c.Request.Context(), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WritePage(c, res.Items, res.Total, limit, offset, APIPrefix+"/players")
}

func (h *PlayerHandler) getByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	player, err := h.svc.GetPlayer(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, player)
}

func (h *PlayerHandler) deleteByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.svc.DeletePlayer(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	response.SetDeletionAlert(c, playerEntity, strconv.FormatInt(id, 10))
	c.Status(http.StatusOK)
}
