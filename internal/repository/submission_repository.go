package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizdash/quizdash-backend/internal/model"
)

// SubmissionRepository handles score record data access. Submissions are
// insert-only: nothing updates or deletes them.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Create inserts a new submission. The raw answers map is stored verbatim
// as jsonb for audit. A single statement, so the write is atomic.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO submissions (id, user_id, email, score, total_questions, percentage, passed, answers)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		s.ID, s.UserID, s.Email, s.Score, s.TotalQuestions, s.Percentage, s.Passed, answers,
	).Scan(&s.CreatedAt)
}

// ListAll retrieves every submission in creation order. Creation order is
// the final tiebreak for leaderboard ranking, so the ORDER BY matters.
func (r *SubmissionRepository) ListAll(ctx context.Context) ([]model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, email, score, total_questions, percentage, passed, answers, created_at
		 FROM submissions
		 ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var s model.Submission
		var answers []byte
		if err := rows.Scan(&s.ID, &s.UserID, &s.Email, &s.Score, &s.TotalQuestions, &s.Percentage, &s.Passed, &answers, &s.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answers, &s.Answers); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
