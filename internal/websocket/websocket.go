package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/quizdash/quizdash-backend/internal/model"
)

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventLeaderboard Event = "leaderboard"
	EventError       Event = "error"
)

// LeaderboardUpdate carries a full ranked snapshot. The stream always
// sends complete snapshots, never deltas, so a client can render any
// message standalone.
type LeaderboardUpdate struct {
	Event   Event                    `json:"event"`
	Entries []model.LeaderboardEntry `json:"entries"`
}

// ErrorMessage reports a stream-level failure before close.
type ErrorMessage struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

// ─── Write helpers ──────────────────────────────────────────────────

const writeTimeout = 10 * time.Second

// WriteUpdate sends a leaderboard snapshot with a write deadline.
func WriteUpdate(conn *websocket.Conn, entries []model.LeaderboardEntry) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(LeaderboardUpdate{Event: EventLeaderboard, Entries: entries})
}

// WriteError sends a typed error message over the WebSocket.
func WriteError(conn *websocket.Conn, errMsg string) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(ErrorMessage{Event: EventError, Error: errMsg})
}
