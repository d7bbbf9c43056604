package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validAddRequest() *model.AddQuestionRequest {
	return &model.AddQuestionRequest{
		Text:          "What is the capital of France?",
		Options:       []string{"London", "Paris", "Berlin", "Madrid"},
		CorrectAnswer: "B",
	}
}

func TestAddReportsFirstViolatedConstraint(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*model.AddQuestionRequest)
		wantErr error
	}{
		{"blank text", func(r *model.AddQuestionRequest) { r.Text = "   " }, ErrTextRequired},
		{"text too long", func(r *model.AddQuestionRequest) { r.Text = strings.Repeat("a", 501) }, ErrTextTooLong},
		{"three options", func(r *model.AddQuestionRequest) { r.Options = r.Options[:3] }, ErrFourOptions},
		{"five options", func(r *model.AddQuestionRequest) { r.Options = append(r.Options, "Rome") }, ErrFourOptions},
		{"blank option", func(r *model.AddQuestionRequest) { r.Options[2] = " " }, ErrEmptyOption},
		{"bad answer key", func(r *model.AddQuestionRequest) { r.CorrectAnswer = "E" }, ErrInvalidAnswerKey},
		{"lowercase answer key", func(r *model.AddQuestionRequest) { r.CorrectAnswer = "b" }, ErrInvalidAnswerKey},
		// Text is checked before option shape, so a request broken both
		// ways reports the text violation.
		{"blank text and three options", func(r *model.AddQuestionRequest) {
			r.Text = ""
			r.Options = r.Options[:3]
		}, ErrTextRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			questions := new(MockQuestionStore)
			svc := NewQuestionService(questions, newTestRedis(t), time.Minute, zerolog.Nop())

			req := validAddRequest()
			tc.mutate(req)

			_, err := svc.Add(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)
			questions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAddStoresTrimmedValuesAndDerivesKeys(t *testing.T) {
	questions := new(MockQuestionStore)
	questions.On("Create", mock.Anything, mock.MatchedBy(func(q *model.Question) bool {
		return q.Text == "What is the capital of France?" &&
			len(q.Options) == 4 && q.Options[1] == "Paris"
	})).Run(func(args mock.Arguments) {
		q := args.Get(1).(*model.Question)
		q.ID = uuid.New()
		q.CreatedAt = time.Now()
	}).Return(nil)

	svc := NewQuestionService(questions, newTestRedis(t), time.Minute, zerolog.Nop())

	resp, err := svc.Add(context.Background(), &model.AddQuestionRequest{
		Text:          "  What is the capital of France?  ",
		Options:       []string{" London ", "Paris", "Berlin ", " Madrid"},
		CorrectAnswer: "B",
	})
	require.NoError(t, err)

	require.Len(t, resp.Options, 4)
	assert.Equal(t, "A", resp.Options[0].Key)
	assert.Equal(t, "London", resp.Options[0].Value)
	assert.Equal(t, "B", resp.Options[1].Key)
	assert.Equal(t, "Paris", resp.Options[1].Value)
	assert.Equal(t, "D", resp.Options[3].Key)
	assert.Equal(t, "Madrid", resp.Options[3].Value)
	assert.Equal(t, "B", resp.CorrectAnswer)
	assert.NotEmpty(t, resp.ID)

	questions.AssertExpectations(t)
}

func TestListCachesCatalogUntilAdd(t *testing.T) {
	stored := model.Question{
		ID:            uuid.New(),
		Text:          "Pick one",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "A",
	}

	questions := new(MockQuestionStore)
	questions.On("List", mock.Anything).Return([]model.Question{stored}, nil).Twice()
	questions.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Question).ID = uuid.New()
	}).Return(nil)

	svc := NewQuestionService(questions, newTestRedis(t), time.Minute, zerolog.Nop())

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Cached: the store's List is not hit again.
	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Adding a question invalidates the snapshot, so the next List goes
	// back to storage.
	_, err = svc.Add(context.Background(), validAddRequest())
	require.NoError(t, err)

	_, err = svc.List(context.Background())
	require.NoError(t, err)

	questions.AssertExpectations(t)
}
