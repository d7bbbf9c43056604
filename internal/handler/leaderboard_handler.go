package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdash/quizdash-backend/internal/response"
	"github.com/quizdash/quizdash-backend/internal/service"
)

// LeaderboardHandler handles the ranked results endpoint.
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard godoc
// GET /leaderboard
// Returns every submission ranked by percentage, then raw score, then
// creation order. Any authenticated caller may view it.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.leaderboardService.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.JSON(c, http.StatusOK, entries)
}
