package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func submissionAt(email string, score, total int, pct float64, created time.Time) model.Submission {
	return model.Submission{
		ID:             uuid.New(),
		Email:          email,
		Score:          score,
		TotalQuestions: total,
		Percentage:     pct,
		Passed:         pct >= model.PassThresholdPct,
		CreatedAt:      created,
	}
}

func TestLeaderboardRanksAreConsecutiveAndStable(t *testing.T) {
	base := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	// Creation order: bob (90), carol (70), alice (90). The two 90s must
	// keep their creation order and get ranks 1 and 2, not a shared 1.
	subs := []model.Submission{
		submissionAt("bob@x.com", 9, 10, 90, base),
		submissionAt("carol@x.com", 7, 10, 70, base.Add(time.Minute)),
		submissionAt("alice@x.com", 9, 10, 90, base.Add(2*time.Minute)),
	}

	submissions := new(MockSubmissionStore)
	submissions.On("ListAll", mock.Anything).Return(subs, nil)

	svc := NewLeaderboardService(submissions, newTestRedis(t), time.Minute, zerolog.Nop())

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
	assert.Equal(t, "bob", entries[0].Name)
	assert.Equal(t, "alice", entries[1].Name)
	assert.Equal(t, "carol", entries[2].Name)
}

func TestLeaderboardBreaksPercentageTiesByRawScore(t *testing.T) {
	base := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	// Same percentage, different denominators: the higher raw score wins.
	subs := []model.Submission{
		submissionAt("small@x.com", 1, 2, 50, base),
		submissionAt("big@x.com", 5, 10, 50, base.Add(time.Minute)),
	}

	submissions := new(MockSubmissionStore)
	submissions.On("ListAll", mock.Anything).Return(subs, nil)

	svc := NewLeaderboardService(submissions, newTestRedis(t), time.Minute, zerolog.Nop())

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "big", entries[0].Name)
	assert.Equal(t, "small", entries[1].Name)
}

func TestLeaderboardEntryFields(t *testing.T) {
	created := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
	subs := []model.Submission{submissionAt("alice@x.com", 4, 5, 80, created)}

	submissions := new(MockSubmissionStore)
	submissions.On("ListAll", mock.Anything).Return(subs, nil)

	svc := NewLeaderboardService(submissions, newTestRedis(t), time.Minute, zerolog.Nop())

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, 1, e.Rank)
	assert.Equal(t, "alice", e.Name)
	assert.Equal(t, "alice@x.com", e.Email)
	assert.Equal(t, 4, e.Score)
	assert.Equal(t, 5, e.TotalQuestions)
	assert.InDelta(t, 80.0, e.Percentage, 0.0001)
	assert.Equal(t, "3/9/2026", e.Date)
}

func TestLeaderboardServesCachedSnapshot(t *testing.T) {
	subs := []model.Submission{
		submissionAt("alice@x.com", 4, 5, 80, time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)),
	}

	submissions := new(MockSubmissionStore)
	submissions.On("ListAll", mock.Anything).Return(subs, nil).Once()

	svc := NewLeaderboardService(submissions, newTestRedis(t), time.Minute, zerolog.Nop())

	first, err := svc.List(context.Background())
	require.NoError(t, err)

	// Second read must come from the cache: ListAll is mocked Once.
	second, err := svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	submissions.AssertExpectations(t)
}
