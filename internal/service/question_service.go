package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quizdash/quizdash-backend/internal/config"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Catalog shape violations, in check order. The first violated constraint
// is the one reported to the caller.
var (
	ErrTextRequired     = errors.New("Question text is required")
	ErrTextTooLong      = errors.New("Question text must be at most 500 characters")
	ErrFourOptions      = errors.New("Exactly four options are required")
	ErrEmptyOption      = errors.New("All options must be non-empty strings")
	ErrInvalidAnswerKey = errors.New("Correct answer must be one of A, B, C, or D")
)

// QuestionStore is the catalog persistence the service needs.
type QuestionStore interface {
	List(ctx context.Context) ([]model.Question, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Question, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, q *model.Question) error
}

// QuestionService handles the question catalog: listing for test takers
// and authoring by admins. The rendered catalog is cached in Redis and
// invalidated on every add.
type QuestionService struct {
	questions QuestionStore
	rdb       *redis.Client
	cacheTTL  time.Duration
	log       zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions QuestionStore, rdb *redis.Client, cacheTTL time.Duration, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questions: questions,
		rdb:       rdb,
		cacheTTL:  cacheTTL,
		log:       log.With().Str("component", "question_service").Logger(),
	}
}

// List returns the full catalog in insertion order, rendered for the wire.
// Cache errors degrade to a direct catalog read, never to a request error.
func (s *QuestionService) List(ctx context.Context) ([]model.QuestionResponse, error) {
	key := config.CacheKey.QuestionCatalogKey()

	if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var out []model.QuestionResponse
		if err := json.Unmarshal(cached, &out); err == nil {
			return out, nil
		}
		// Corrupt cache entry: drop it and fall through to the catalog.
		s.rdb.Del(ctx, key)
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.QuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, questions[i].Response())
	}

	if payload, err := json.Marshal(out); err == nil {
		if err := s.rdb.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("catalog cache write failed")
		}
	}

	return out, nil
}

// Add validates and persists a new question, returning the stored record.
// Validation is sequential so the returned error names the first violated
// constraint: text, then option count, then option contents, then the
// answer key. Trimmed values are what gets stored.
func (s *QuestionService) Add(ctx context.Context, req *model.AddQuestionRequest) (*model.QuestionResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrTextRequired
	}
	if len(text) > model.MaxQuestionTextLen {
		return nil, ErrTextTooLong
	}

	if len(req.Options) != model.OptionCount {
		return nil, ErrFourOptions
	}
	options := make([]string, model.OptionCount)
	for i, opt := range req.Options {
		trimmed := strings.TrimSpace(opt)
		if trimmed == "" {
			return nil, ErrEmptyOption
		}
		options[i] = trimmed
	}

	if !model.ValidAnswerKey(req.CorrectAnswer) {
		return nil, ErrInvalidAnswerKey
	}

	question := &model.Question{
		Text:          text,
		Options:       options,
		CorrectAnswer: req.CorrectAnswer,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}

	// The cached catalog no longer matches storage.
	if err := s.rdb.Del(ctx, config.CacheKey.QuestionCatalogKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}

	resp := question.Response()
	return &resp, nil
}
