package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/quizdash/quizdash-backend/internal/config"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// leaderboardDateFormat renders the submission date the way the contest
// UI displays it (en-US short date).
const leaderboardDateFormat = "1/2/2006"

// LeaderboardService ranks all submissions. Sort order: percentage
// descending, raw score descending, creation order as the stable final
// tiebreak. Ranks are 1-based positions; ties get consecutive numbers.
type LeaderboardService struct {
	submissions SubmissionStore
	rdb         *redis.Client
	cacheTTL    time.Duration
	log         zerolog.Logger
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(submissions SubmissionStore, rdb *redis.Client, cacheTTL time.Duration, log zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		submissions: submissions,
		rdb:         rdb,
		cacheTTL:    cacheTTL,
		log:         log.With().Str("component", "leaderboard_service").Logger(),
	}
}

// List returns the ranked leaderboard, serving the cached snapshot when
// one exists. Cache errors degrade to a recompute, never to a request
// error.
func (s *LeaderboardService) List(ctx context.Context) ([]model.LeaderboardEntry, error) {
	key := config.CacheKey.LeaderboardSnapshotKey()

	if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var out []model.LeaderboardEntry
		if err := json.Unmarshal(cached, &out); err == nil {
			return out, nil
		}
		s.rdb.Del(ctx, key)
	}

	return s.Refresh(ctx)
}

// Refresh recomputes the leaderboard from storage and rewrites the cached
// snapshot. Called on cache miss and by the refresh worker.
func (s *LeaderboardService) Refresh(ctx context.Context) ([]model.LeaderboardEntry, error) {
	subs, err := s.submissions.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// ListAll returns creation order; the stable sort preserves it as the
	// final tiebreak between equal (percentage, score) pairs.
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Percentage != subs[j].Percentage {
			return subs[i].Percentage > subs[j].Percentage
		}
		return subs[i].Score > subs[j].Score
	})

	entries := make([]model.LeaderboardEntry, 0, len(subs))
	for i := range subs {
		entries = append(entries, model.LeaderboardEntry{
			Rank:           i + 1,
			Name:           displayName(subs[i].Email),
			Email:          subs[i].Email,
			Score:          subs[i].Score,
			TotalQuestions: subs[i].TotalQuestions,
			Percentage:     subs[i].Percentage,
			Date:           subs[i].CreatedAt.Format(leaderboardDateFormat),
		})
	}

	if payload, err := json.Marshal(entries); err == nil {
		if err := s.rdb.Set(ctx, config.CacheKey.LeaderboardSnapshotKey(), payload, s.cacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("leaderboard cache write failed")
		}
	}

	return entries, nil
}

// displayName truncates the email at its first '@'. This is the ranked
// display name, not the account's registered name.
func displayName(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
