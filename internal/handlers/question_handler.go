package handlers

import (
	"net/http"
	"strconv"

	"github.com/quizflow/quiz-service/internal/models"
	"github.com/quizflow/quiz-service/internal/repositories"
	"github.com/quizflow/quiz-service/internal/services"
	"github.com/quizflow/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
	importExport    services.ImportExportService
}

func NewQuestionHandler(
	questionService services.QuestionService,
	importExport services.ImportExportService,
	logger utils.Logger,
) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
		importExport:    importExport,
	}
}

// SetActiveRequest toggles a question's active flag
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// CreateQuestion creates a new question
// @Summary Create question
// @Description Creates a new active question with four choices
// @Tags questions
// @Accept json
// @Produce json
// @Param question body services.CreateQuestionRequest true "Question data"
// @Success 201 {object} models.Question
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /admin/questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	h.LogRequest(c, "Creating question")

	var req services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// GetQuestion retrieves a question by ID
// @Summary Get question
// @Tags questions
// @Produce json
// @Param id path uint true "Question ID"
// @Success 200 {object} models.Question
// @Failure 404 {object} ErrorResponse
// @Router /admin/questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Getting question", "question_id", id)

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// ListQuestions lists questions with filters and pagination
// @Summary List questions
// @Tags questions
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param difficulty query string false "EASY, MEDIUM or HARD"
// @Param is_active query bool false "Active flag filter"
// @Success 200 {object} SuccessResponse
// @Router /admin/questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	h.LogRequest(c, "Listing questions")

	filters := h.parseQuestionFilters(c)
	questions, total, err := h.questionService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"total":     total,
		"limit":     filters.Limit,
		"offset":    filters.Offset,
	})
}

// UpdateQuestion updates an existing question
// @Summary Update question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path uint true "Question ID"
// @Param question body services.UpdateQuestionRequest true "Fields to update"
// @Success 200 {object} models.Question
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Updating question", "question_id", id)

	var req services.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeleteQuestion deletes a question
// @Summary Delete question
// @Tags questions
// @Param id path uint true "Question ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /admin/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting question", "question_id", id)

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DuplicateQuestion creates an inactive marked copy of a question
// @Summary Duplicate question
// @Description Creates an inactive copy with "[COPY] " prefixed to the text
// @Tags questions
// @Produce json
// @Param id path uint true "Question ID"
// @Success 201 {object} models.Question
// @Failure 404 {object} ErrorResponse
// @Router /admin/questions/{id}/duplicate [post]
func (h *QuestionHandler) DuplicateQuestion(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Duplicating question", "question_id", id)

	copy, err := h.questionService.Duplicate(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, copy)
}

// SetQuestionActive toggles the active flag of a question
// @Summary Set question active flag
// @Tags questions
// @Accept json
// @Param id path uint true "Question ID"
// @Param flag body SetActiveRequest true "Active flag"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/questions/{id}/active [put]
func (h *QuestionHandler) SetQuestionActive(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Setting question active flag", "question_id", id, "is_active", *req.IsActive)

	if err := h.questionService.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Question active flag updated", gin.H{
		"id":        id,
		"is_active": *req.IsActive,
	})
}

// ImportQuestions bulk-imports questions from an uploaded CSV or Excel file
// @Summary Import questions
// @Description Imports questions from a CSV or Excel upload; returns a per-row summary
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or Excel file"
// @Success 200 {object} models.ImportSummary
// @Failure 400 {object} ErrorResponse
// @Router /admin/questions/import [post]
func (h *QuestionHandler) ImportQuestions(c *gin.Context) {
	h.LogRequest(c, "Importing questions")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing file upload",
			Details: err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Cannot read uploaded file", err)
		return
	}
	defer file.Close()

	summary, err := h.importExport.ImportQuestions(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportQuestions exports the question store as CSV or Excel
// @Summary Export questions
// @Description Exports questions as a CSV or Excel download
// @Tags questions
// @Produce octet-stream
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Router /admin/questions/export [get]
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	h.LogRequest(c, "Exporting questions")

	filters := h.parseQuestionFilters(c)

	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		data, err := h.importExport.ExportQuestionsCSV(c.Request.Context(), filters)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="questions.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := h.importExport.ExportQuestionsExcel(c.Request.Context(), filters)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="questions.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unsupported export format",
			Details: format,
		})
	}
}

func (h *QuestionHandler) parseQuestionFilters(c *gin.Context) repositories.QuestionFilters {
	page := parseIntQuery(c, "page", 1)
	size := parseIntQuery(c, "size", 20)

	filters := repositories.QuestionFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if difficulty := c.Query("difficulty"); difficulty != "" {
		level := models.DifficultyLevel(difficulty)
		filters.Difficulty = &level
	}

	if active := c.Query("is_active"); active != "" {
		if parsed, err := strconv.ParseBool(active); err == nil {
			filters.IsActive = &parsed
		}
	}

	return filters
}
