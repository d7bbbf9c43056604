package model

import (
	"time"

	"github.com/google/uuid"
)

// OptionCount is the fixed number of options per question.
const OptionCount = 4

// MaxQuestionTextLen caps the question text length.
const MaxQuestionTextLen = 500

// OptionKeys are the answer key letters, derived from option position.
var OptionKeys = [OptionCount]string{"A", "B", "C", "D"}

// ValidAnswerKey reports whether key is one of A, B, C, D.
func ValidAnswerKey(key string) bool {
	for _, k := range OptionKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Question is a single 4-option multiple-choice question. Options are an
// ordered array; the key letter for each option comes from its index.
type Question struct {
	ID            uuid.UUID
	Text          string
	Options       []string
	CorrectAnswer string
	CreatedAt     time.Time
}

// Option pairs a key letter with its display value on the wire.
type Option struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// QuestionResponse is the wire shape of a question.
type QuestionResponse struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []Option `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Response renders the question for the wire, deriving option keys from
// array position.
func (q *Question) Response() QuestionResponse {
	opts := make([]Option, 0, OptionCount)
	for i, v := range q.Options {
		if i >= OptionCount {
			break
		}
		opts = append(opts, Option{Key: OptionKeys[i], Value: v})
	}
	return QuestionResponse{
		ID:            q.ID.String(),
		Text:          q.Text,
		Options:       opts,
		CorrectAnswer: q.CorrectAnswer,
	}
}

// AddQuestionRequest is the payload for authoring a question. Shape
// constraints (trimmed non-empty text, exactly four non-empty options,
// valid answer key) are checked sequentially by the catalog service so
// the error names the first violated constraint.
type AddQuestionRequest struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}
