package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/quizdash/quizdash-backend/internal/config"
	"github.com/quizdash/quizdash-backend/internal/service"
	ws "github.com/quizdash/quizdash-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live leaderboard updates to dashboard clients.
type WSHandler struct {
	rdb                *redis.Client
	leaderboardService *service.LeaderboardService
	log                zerolog.Logger
	upgrader           websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, leaderboardService *service.LeaderboardService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:                rdb,
		leaderboardService: leaderboardService,
		log:                log.With().Str("component", "ws_handler").Logger(),
		upgrader:           buildUpgrader(allowedOrigins),
	}
}

// keepAliveInterval bounds staleness when no submissions arrive: the
// stream re-sends the current snapshot at least this often.
const keepAliveInterval = 30 * time.Second

// LeaderboardStream godoc
// WS /ws/leaderboard?token=...
// Upgrades to WebSocket and pushes a full ranked snapshot immediately,
// then again after every submission event and on a keep-alive tick.
func (h *WSHandler) LeaderboardStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	sub := h.rdb.Subscribe(ctx, config.WorkerKey.SubmissionEventsChannel)
	defer sub.Close()
	events := sub.Channel()

	// Reader goroutine: detects client close. The stream is one-way, so
	// any read result just ends the connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func() bool {
		entries, err := h.leaderboardService.List(ctx)
		if err != nil {
			h.log.Error().Err(err).Msg("leaderboard read failed")
			ws.WriteError(conn, "leaderboard unavailable")
			return false
		}
		if err := ws.WriteUpdate(conn, entries); err != nil {
			return false
		}
		return true
	}

	if !send() {
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-events:
			if !send() {
				return
			}
		case <-ticker.C:
			if !send() {
				return
			}
		}
	}
}
