package worker

import (
	"context"
	"time"

	"github.com/quizdash/quizdash-backend/internal/config"
	"github.com/quizdash/quizdash-backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// LeaderboardWorker keeps the cached leaderboard snapshot warm so reads
// stay cheap during the post-contest rush. It refreshes after every
// submission event and on a periodic tick, whichever comes first.
type LeaderboardWorker struct {
	rdb         *redis.Client
	leaderboard *service.LeaderboardService
	interval    time.Duration
	log         zerolog.Logger
}

// NewLeaderboardWorker creates a new LeaderboardWorker.
func NewLeaderboardWorker(rdb *redis.Client, leaderboard *service.LeaderboardService, interval time.Duration, log zerolog.Logger) *LeaderboardWorker {
	return &LeaderboardWorker{
		rdb:         rdb,
		leaderboard: leaderboard,
		interval:    interval,
		log:         log.With().Str("component", "leaderboard_worker").Logger(),
	}
}

// Start runs the refresh loop until ctx is cancelled. A failed refresh is
// logged and retried on the next trigger; the cached snapshot's TTL
// bounds how stale a failing loop can leave readers.
func (w *LeaderboardWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("LeaderboardWorker started")

	sub := w.rdb.Subscribe(ctx, config.WorkerKey.SubmissionEventsChannel)
	defer sub.Close()
	events := sub.Channel()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("LeaderboardWorker stopped")
			return

		case <-events:
			w.refresh(ctx)

		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *LeaderboardWorker) refresh(ctx context.Context) {
	if _, err := w.leaderboard.Refresh(ctx); err != nil {
		w.log.Error().Err(err).Msg("leaderboard refresh failed")
	}
}
