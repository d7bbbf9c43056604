package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/quizdash/quizdash-backend/internal/config"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Scoring input violations.
var (
	ErrNoAnswers        = errors.New("No answers provided")
	ErrNoValidQuestions = errors.New("No valid questions found")
)

// SubmissionStore is the score-record persistence the pipeline needs.
type SubmissionStore interface {
	Create(ctx context.Context, s *model.Submission) error
	ListAll(ctx context.Context) ([]model.Submission, error)
}

// SubmissionEvent is published on the submission-events channel after
// each persisted score record.
type SubmissionEvent struct {
	SubmissionID string  `json:"submission_id"`
	UserID       int     `json:"user_id"`
	Percentage   float64 `json:"percentage"`
}

// ScoringService turns a raw answer submission into an immutable score
// record. The grading denominator is the total catalog size at submission
// time, snapshotted by a count in the same request, so scores stay
// comparable across participants regardless of how many questions each
// one answered.
type ScoringService struct {
	questions   QuestionStore
	submissions SubmissionStore
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewScoringService creates a new ScoringService.
func NewScoringService(questions QuestionStore, submissions SubmissionStore, rdb *redis.Client, log zerolog.Logger) *ScoringService {
	return &ScoringService{
		questions:   questions,
		submissions: submissions,
		rdb:         rdb,
		log:         log.With().Str("component", "scoring_service").Logger(),
	}
}

// Score grades the answers map against the catalog's correct answers,
// persists a submission snapshot, and returns the result.
//
// Blank answers (after trimming) are excluded from the answered set; ids
// that don't resolve to a stored question are dropped silently. Both the
// stored answer and the submitted value are uppercased and trimmed before
// comparison. Exactly one submission row is written per call.
func (s *ScoringService) Score(ctx context.Context, claims *Claims, answers map[string]string) (*model.SubmitResult, error) {
	answeredIDs := make([]uuid.UUID, 0, len(answers))
	for id, val := range answers {
		if strings.TrimSpace(val) == "" {
			continue
		}
		qid, err := uuid.Parse(id)
		if err != nil {
			// Malformed id: not an error, just not gradable.
			continue
		}
		answeredIDs = append(answeredIDs, qid)
	}

	answered := 0
	for _, val := range answers {
		if strings.TrimSpace(val) != "" {
			answered++
		}
	}
	if answered == 0 {
		return nil, ErrNoAnswers
	}

	var questions []model.Question
	if len(answeredIDs) > 0 {
		var err error
		questions, err = s.questions.GetByIDs(ctx, answeredIDs)
		if err != nil {
			return nil, err
		}
	}
	if len(questions) == 0 {
		return nil, ErrNoValidQuestions
	}

	correctByID := make(map[string]string, len(questions))
	for i := range questions {
		correctByID[questions[i].ID.String()] = strings.ToUpper(strings.TrimSpace(questions[i].CorrectAnswer))
	}

	// Denominator: total catalog size, snapshotted now. Falls back to the
	// answered-set size only if the catalog reads empty.
	total, err := s.questions.Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		total = answered
	}

	score := 0
	for id, val := range answers {
		submitted := strings.ToUpper(strings.TrimSpace(val))
		if submitted == "" {
			continue
		}
		if correct, ok := correctByID[id]; ok && correct == submitted {
			score++
		}
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(score) / float64(total) * 100
	}
	passed := percentage >= model.PassThresholdPct

	submission := &model.Submission{
		UserID:         claims.UserID,
		Email:          claims.Email,
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		Passed:         passed,
		Answers:        answers,
	}
	if err := s.submissions.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, submission)

	return &model.SubmitResult{
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		Passed:         passed,
	}, nil
}

// publishEvent notifies leaderboard consumers. Best effort: a failed
// publish never fails the submission that was already persisted.
func (s *ScoringService) publishEvent(ctx context.Context, sub *model.Submission) {
	payload, err := json.Marshal(SubmissionEvent{
		SubmissionID: sub.ID.String(),
		UserID:       sub.UserID,
		Percentage:   sub.Percentage,
	})
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.WorkerKey.SubmissionEventsChannel, payload).Err(); err != nil {
		s.log.Warn().Err(err).Msg("submission event publish failed")
	}
}
