package service

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func testClaims() *Claims {
	return &Claims{UserID: 7, Email: "alice@x.com", Role: model.RoleParticipant}
}

func mcq(correct string) model.Question {
	return model.Question{
		ID:            uuid.New(),
		Text:          "placeholder",
		Options:       []string{"one", "two", "three", "four"},
		CorrectAnswer: correct,
	}
}

func TestScoreNormalizesAndDropsUnknownIDs(t *testing.T) {
	q1 := mcq("B")
	q2 := mcq("A")

	questions := new(MockQuestionStore)
	submissions := new(MockSubmissionStore)
	svc := NewScoringService(questions, submissions, newTestRedis(t), zerolog.Nop())

	answers := map[string]string{
		q1.ID.String(): " b ",
		q2.ID.String(): "C",
		"3":            "A", // not a valid id, dropped silently
	}

	questions.On("GetByIDs", mock.Anything, mock.MatchedBy(func(ids []uuid.UUID) bool {
		return len(ids) == 2
	})).Return([]model.Question{q1, q2}, nil)
	questions.On("Count", mock.Anything).Return(2, nil)
	submissions.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Score(context.Background(), testClaims(), answers)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.InDelta(t, 50.0, result.Percentage, 0.0001)
	assert.True(t, result.Passed)
}

func TestScoreDenominatorIsCatalogSize(t *testing.T) {
	q1 := mcq("A")
	q2 := mcq("D")

	questions := new(MockQuestionStore)
	submissions := new(MockSubmissionStore)
	svc := NewScoringService(questions, submissions, newTestRedis(t), zerolog.Nop())

	answers := map[string]string{
		q1.ID.String(): "A",
		q2.ID.String(): "D",
	}

	questions.On("GetByIDs", mock.Anything, mock.Anything).Return([]model.Question{q1, q2}, nil)
	questions.On("Count", mock.Anything).Return(10, nil)
	submissions.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Score(context.Background(), testClaims(), answers)
	require.NoError(t, err)

	// Both answered questions are correct, but the catalog holds 10.
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 10, result.TotalQuestions)
	assert.InDelta(t, 20.0, result.Percentage, 0.0001)
	assert.False(t, result.Passed)
}

func TestScoreRejectsBlankAnswerSet(t *testing.T) {
	questions := new(MockQuestionStore)
	submissions := new(MockSubmissionStore)
	svc := NewScoringService(questions, submissions, newTestRedis(t), zerolog.Nop())

	answers := map[string]string{
		uuid.New().String(): "",
		uuid.New().String(): "   ",
	}

	_, err := svc.Score(context.Background(), testClaims(), answers)
	assert.ErrorIs(t, err, ErrNoAnswers)

	// Rejected before any persistence write.
	submissions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestScoreRejectsWhenNoIDResolves(t *testing.T) {
	questions := new(MockQuestionStore)
	submissions := new(MockSubmissionStore)
	svc := NewScoringService(questions, submissions, newTestRedis(t), zerolog.Nop())

	// Malformed id never reaches the catalog lookup.
	_, err := svc.Score(context.Background(), testClaims(), map[string]string{"not-an-id": "A"})
	assert.ErrorIs(t, err, ErrNoValidQuestions)

	// Well-formed id with no matching question resolves to nothing.
	questions.On("GetByIDs", mock.Anything, mock.Anything).Return([]model.Question{}, nil)
	_, err = svc.Score(context.Background(), testClaims(), map[string]string{uuid.New().String(): "A"})
	assert.ErrorIs(t, err, ErrNoValidQuestions)

	submissions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestScorePersistsSnapshotWithRawAnswers(t *testing.T) {
	q1 := mcq("B")

	questions := new(MockQuestionStore)
	submissions := new(MockSubmissionStore)
	svc := NewScoringService(questions, submissions, newTestRedis(t), zerolog.Nop())

	answers := map[string]string{
		q1.ID.String(): "b",
		"stale-id":     "A",
		"blank":        "",
	}

	questions.On("GetByIDs", mock.Anything, mock.Anything).Return([]model.Question{q1}, nil)
	questions.On("Count", mock.Anything).Return(1, nil)

	var persisted *model.Submission
	submissions.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*model.Submission)
	}).Return(nil)

	_, err := svc.Score(context.Background(), testClaims(), answers)
	require.NoError(t, err)

	require.NotNil(t, persisted)
	assert.Equal(t, 7, persisted.UserID)
	assert.Equal(t, "alice@x.com", persisted.Email)
	assert.Equal(t, 1, persisted.Score)
	assert.True(t, persisted.Passed)
	// The raw map is stored verbatim for audit, blanks and stale ids included.
	assert.Equal(t, answers, persisted.Answers)
}
