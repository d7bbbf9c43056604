package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/quizdash/quizdash-backend/internal/response"
	"github.com/quizdash/quizdash-backend/internal/service"
)

// QuestionHandler handles question catalog endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListQuestions godoc
// GET /questions
// Returns the entire catalog in insertion order.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context())
	if err != nil {
		// The raw error message is echoed as a debug aid for the contest
		// operators; this surface is not exposed publicly.
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	if questions == nil {
		questions = []model.QuestionResponse{}
	}

	response.JSON(c, http.StatusOK, questions)
}

// AddQuestion godoc
// POST /questions
// Persists a new question authored by an admin.
func (h *QuestionHandler) AddQuestion(c *gin.Context) {
	var req model.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, err := h.questionService.Add(c.Request.Context(), &req)
	if err != nil {
		if isShapeViolation(err) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.JSON(c, http.StatusOK, question)
}

// isShapeViolation reports whether err is one of the catalog's ordered
// validation failures.
func isShapeViolation(err error) bool {
	return errors.Is(err, service.ErrTextRequired) ||
		errors.Is(err, service.ErrTextTooLong) ||
		errors.Is(err, service.ErrFourOptions) ||
		errors.Is(err, service.ErrEmptyOption) ||
		errors.Is(err, service.ErrInvalidAnswerKey)
}
