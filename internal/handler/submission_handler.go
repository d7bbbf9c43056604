package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdash/quizdash-backend/internal/middleware"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/quizdash/quizdash-backend/internal/response"
	"github.com/quizdash/quizdash-backend/internal/service"
	"github.com/quizdash/quizdash-backend/internal/validator"
)

// SubmissionHandler handles the test-submission endpoint.
type SubmissionHandler struct {
	scoringService *service.ScoringService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(scoringService *service.ScoringService) *SubmissionHandler {
	return &SubmissionHandler{scoringService: scoringService}
}

// Submit godoc
// POST /submit
// Grades the caller's answer set and writes the score record. The client
// test runner calls this exactly once, automatically, at test end.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req model.SubmitRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Error(c, http.StatusBadRequest, "Invalid answers format")
		return
	}

	result, err := h.scoringService.Score(c.Request.Context(), claims, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrNoAnswers) || errors.Is(err, service.ErrNoValidQuestions) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.JSON(c, http.StatusOK, result)
}
