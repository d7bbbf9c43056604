package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockQuestionStore implements QuestionStore.
type MockQuestionStore struct {
	mock.Mock
}

func (m *MockQuestionStore) List(ctx context.Context) ([]model.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *MockQuestionStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Question, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *MockQuestionStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionStore) Create(ctx context.Context, q *model.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

// MockSubmissionStore implements SubmissionStore.
type MockSubmissionStore struct {
	mock.Mock
}

func (m *MockSubmissionStore) Create(ctx context.Context, s *model.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubmissionStore) ListAll(ctx context.Context) ([]model.Submission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Submission), args.Error(1)
}

// MockUserStore implements UserStore.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
