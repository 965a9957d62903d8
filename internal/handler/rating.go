package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stucom/basketball-fans-service/internal/auth"
	"github.com/stucom/basketball-fans-service/internal/repository"
	"github.com/stucom/basketball-fans-service/internal/service"
	"github.com/stucom/basketball-fans-service/pkg/response"
)

const ratingEntity = "gameRating"

type RatingHandler struct {
	svc service.RatingService
}

func NewRatingHandler(svc service.RatingService) *RatingHandler { return &RatingHandler{svc: svc} }

func (h *RatingHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/game-ratings")
	{
		g.POST("", h.create)
		g.PUT("", h.update)
		g.GET("", h.list)
		g.GET("/by-current-user", h.listByCurrentUser)
		g.GET("/:id", h.getByID)
		g.DELETE("/:id", h.deleteByID)
	}
	// Aggregate views keep their historical singular prefix.
	agg := r.Group("/game-rating")
	{
		agg.GET("/avgGameRating/:id", h.avgGameRating)
		agg.GET("/topGames/", h.topGames)
	}
}

type ratingRequest struct {
	ID     int64 `json:"id"`
	Score  int   `json:"score"`
	GameID int64 `json:"game_id"`
}

// create handles the vote submission. The service decides between the
// insert path (201 + Location) and the overwrite path (200).
func (h *RatingHandler) create(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	h.upsert(c, req)
}

// update handles PUT. Without an id the request is just a submission and
// follows the create flow, matching the historical contract.
func (h *RatingHandler) update(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	if req.ID == 0 {
		h.upsert(c, req)
		return
	}
	rating, err := h.svc.UpdateRating(c.Request.Context(), req.ID, req.Score)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.SetUpdateAlert(c, ratingEntity, strconv.FormatInt(rating.ID, 10))
	response.WriteData(c, http.StatusOK, rating)
}

func (h *RatingHandler) upsert(c *gin.Context, req ratingRequest) {
	login, _ := auth.LoginFromContext(c)
	res, err := h.svc.RateGame(c.Request.Context(), login, service.RatingSubmission{
		ID:     req.ID,
		Score:  req.Score,
		GameID: req.GameID,
	})
	if err != nil {
		if req.ID != 0 && errors.Is(err, service.ErrInvalidInput) {
			response.SetFailureAlert(c, ratingEntity, "idexists")
		}
		response.WriteError(c, err)
		return
	}
	id := strconv.FormatInt(res.Rating.ID, 10)
	if res.Created {
		response.SetLocation(c, APIPrefix+"/game-ratings", res.Rating.ID)
		response.SetCreationAlert(c, ratingEntity, id)
		response.WriteData(c, http.StatusCreated, res.Rating)
		return
	}
	response.SetUpdateAlert(c, ratingEntity, id)
	response.WriteData(c, http.StatusOK, res.Rating)
}

func (h *RatingHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.svc.ListRatings(c.Request.Context(), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WritePage(c, res.Items, res.Total, limit, offset, APIPrefix+"/game-ratings")
}

func (h *RatingHandler) listByCurrentUser(c *gin.Context) {
	login, _ := auth.LoginFromContext(c)
	ratings, err := h.svc.ListRatingsByUser(c.Request.Context(), login)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, ratings)
}

func (h *RatingHandler) getByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	rating, err := h.svc.GetRating(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, rating)
}

// deleteByID always answers 200: removal of an absent vote is a no-op.
func (h *RatingHandler) deleteByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.svc.DeleteRating(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	response.SetDeletionAlert(c, ratingEntity, strconv.FormatInt(id, 10))
	c.Status(http.StatusOK)
}

func (h *RatingHandler) avgGameRating(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	avg, err := h.svc.AvgGameRating(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, avg)
}

func (h *RatingHandler) topGames(c *gin.Context) {
	top, err := h.svc.TopGames(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, top)
}
