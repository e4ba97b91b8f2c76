package handlers

import (
	"net/http"

	"github.com/quizflow/quiz-service/internal/services"
	"github.com/quizflow/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ReportingHandler struct {
	BaseHandler
	reportingService services.ReportingService
}

func NewReportingHandler(reportingService services.ReportingService, logger utils.Logger) *ReportingHandler {
	return &ReportingHandler{
		BaseHandler:      NewBaseHandler(logger),
		reportingService: reportingService,
	}
}

// Home returns the landing page figures
// @Summary Home stats
// @Description Returns the active question pool size and the user's attempt summary
// @Tags reporting
// @Produce json
// @Success 200 {object} services.HomeStats
// @Router /home [get]
func (h *ReportingHandler) Home(c *gin.Context) {
	h.LogRequest(c, "Getting home stats")

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.reportingService.HomeStats(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// About returns static service information
// @Summary About
// @Tags reporting
// @Produce json
// @Success 200 {object} gin.H
// @Router /about [get]
func (h *ReportingHandler) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "quiz-service",
		"description": "Multiple-choice quiz service with per-user history and leaderboards",
		"grades":      gin.H{"A": "90+", "B": "80+", "C": "70+", "D": "60+", "F": "below 60"},
		"passing":     60,
	})
}

// History returns the user's full attempt history with aggregates
// @Summary Score history
// @Tags reporting
// @Produce json
// @Success 200 {object} services.UserHistory
// @Failure 401 {object} ErrorResponse
// @Router /history [get]
func (h *ReportingHandler) History(c *gin.Context) {
	h.LogRequest(c, "Getting score history")

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	history, err := h.reportingService.UserHistory(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// Leaderboard returns the top scores and recent high scores
// @Summary Leaderboard
// @Tags reporting
// @Produce json
// @Success 200 {object} services.Leaderboard
// @Router /leaderboard [get]
func (h *ReportingHandler) Leaderboard(c *gin.Context) {
	h.LogRequest(c, "Getting leaderboard")

	board, err := h.reportingService.Leaderboard(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}
