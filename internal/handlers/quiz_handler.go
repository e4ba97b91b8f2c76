package handlers

import (
	"net/http"

	"github.com/quizflow/quiz-service/internal/services"
	"github.com/quizflow/quiz-service/internal/session"
	"github.com/quizflow/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
	}
}

// Setup stores the quiz settings for the next quiz
// @Summary Configure quiz
// @Description Validates and stores the quiz settings in the user session
// @Tags quiz
// @Accept json
// @Produce json
// @Param settings body session.Settings true "Quiz settings"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /quiz/setup [post]
func (h *QuizHandler) Setup(c *gin.Context) {
	h.LogRequest(c, "Configuring quiz")

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	settings := session.DefaultSettings()
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.quizService.Configure(c.Request.Context(), userID, settings); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Quiz configured", settings)
}

// Start presents the quiz questions
// @Summary Take quiz
// @Description Presents the configured quiz; a refresh returns the same questions
// @Tags quiz
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.QuizView}
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /quiz [get]
func (h *QuizHandler) Start(c *gin.Context) {
	h.LogRequest(c, "Presenting quiz")

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.quizService.Start(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Submit scores the submitted answers
// @Summary Submit quiz
// @Description Scores the answers against the presented questions and stores the result
// @Tags quiz
// @Accept json
// @Produce json
// @Param answers body services.SubmitQuizRequest true "Answer selections keyed by question id"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /quiz/submit [post]
func (h *QuizHandler) Submit(c *gin.Context) {
	h.LogRequest(c, "Submitting quiz")

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	recordID, err := h.quizService.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Quiz submitted", gin.H{
		"record_id": recordID,
	})
}

// Results renders the outcome of the just-submitted quiz
// @Summary Quiz results
// @Description Renders the pending result once; a second visit finds nothing pending
// @Tags quiz
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.QuizResult}
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /quiz/results [get]
func (h *QuizHandler) Results(c *gin.Context) {
	h.LogRequest(c, "Rendering quiz results")

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.quizService.Results(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
