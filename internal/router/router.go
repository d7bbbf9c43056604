package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quizdash/quizdash-backend/internal/config"
	"github.com/quizdash/quizdash-backend/internal/handler"
	"github.com/quizdash/quizdash-backend/internal/middleware"
	"github.com/quizdash/quizdash-backend/internal/response"
	"github.com/quizdash/quizdash-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Question    *handler.QuestionHandler
	Submission  *handler.SubmissionHandler
	Leaderboard *handler.LeaderboardHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// Paths match the contest client exactly, so no /api prefix.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response can be traced.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Auth (Public) ─────────────────────────────────────────────────
	auth := router.Group("/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	// ─── Catalog ───────────────────────────────────────────────────────
	// Listing requires only token presence; authoring requires a valid
	// admin token.
	router.GET("/questions", middleware.RequireTokenPresence(), handlers.Question.ListQuestions)
	router.POST("/questions", middleware.RequireAdmin(authService), handlers.Question.AddQuestion)

	// ─── Scoring ───────────────────────────────────────────────────────
	router.POST("/submit", middleware.RequireAuth(authService), handlers.Submission.Submit)

	// ─── Leaderboard ───────────────────────────────────────────────────
	router.GET("/leaderboard", middleware.RequireTokenPresence(), handlers.Leaderboard.GetLeaderboard)

	// ─── WebSocket ─────────────────────────────────────────────────────
	// Browsers cannot set headers on upgrade requests, so the token rides
	// the query string.
	router.GET("/ws/leaderboard", middleware.RequireTokenPresence(), handlers.WS.LeaderboardStream)

	return router
}
