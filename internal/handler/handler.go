package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stucom/basketball-fans-service/internal/service"
)

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, repo Pinger, gameSvc service.GameService, playerSvc service.PlayerService, ratingSvc service.RatingService, favSvc service.FavouriteService) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIPrefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewGameHandler(gameSvc).Register(api)
		NewPlayerHandler(playerSvc).Register(api)
		NewRatingHandler(ratingSvc).Register(api)
		NewFavouriteHandler(favSvc).Register(api)
	}
}
