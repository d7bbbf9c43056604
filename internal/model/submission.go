package model

import (
	"time"

	"github.com/google/uuid"
)

// PassThresholdPct is the percentage at and above which a submission passes.
const PassThresholdPct = 50.0

// Submission is an immutable score record, written exactly once per test
// attempt. The raw answers map is stored verbatim for audit, including
// blank and unresolvable entries.
type Submission struct {
	ID             uuid.UUID
	UserID         int
	Email          string
	Score          int
	TotalQuestions int
	Percentage     float64
	Passed         bool
	Answers        map[string]string
	CreatedAt      time.Time
}

// SubmitRequest is the payload for a test submission: a possibly sparse
// mapping from question id to selected option key.
type SubmitRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// SubmitResult is returned to the caller after scoring.
type SubmitResult struct {
	Score          int     `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	Percentage     float64 `json:"percentage"`
	Passed         bool    `json:"passed"`
}

// LeaderboardEntry is one ranked row. Rank is the 1-based position in the
// sorted order; ties get consecutive, not identical, ranks. Name is the
// email truncated at its first '@'.
type LeaderboardEntry struct {
	Rank           int     `json:"rank"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	Percentage     float64 `json:"percentage"`
	Date           string  `json:"date"`
}
