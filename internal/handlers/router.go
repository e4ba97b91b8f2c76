package handlers

import (
	"net/http"

	"github.com/quizflow/quiz-service/internal/services"
	"github.com/quizflow/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	quizHandler      *QuizHandler
	questionHandler  *QuestionHandler
	reportingHandler *ReportingHandler
	verifier         TokenVerifier
	logger           utils.Logger
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	verifier TokenVerifier,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:      NewQuizHandler(serviceManager.Quiz(), logger),
		questionHandler:  NewQuestionHandler(serviceManager.Question(), serviceManager.ImportExport(), logger),
		reportingHandler: NewReportingHandler(serviceManager.Reporting(), logger),
		verifier:         verifier,
		logger:           logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "quiz-service",
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(AuthMiddleware(hm.verifier, hm.logger))
	{
		v1.GET("/home", hm.reportingHandler.Home)
		v1.GET("/about", hm.reportingHandler.About)
		v1.GET("/history", hm.reportingHandler.History)
		v1.GET("/leaderboard", hm.reportingHandler.Leaderboard)

		// Quiz flow: setup -> take -> submit -> results
		quiz := v1.Group("/quiz")
		{
			quiz.POST("/setup", hm.quizHandler.Setup)
			quiz.GET("", hm.quizHandler.Start)
			quiz.POST("/submit", hm.quizHandler.Submit)
			quiz.GET("/results", hm.quizHandler.Results)
		}

		// Question curation is admin-only
		admin := v1.Group("/admin")
		admin.Use(AdminMiddleware())
		{
			questions := admin.Group("/questions")
			{
				questions.POST("", hm.questionHandler.CreateQuestion)
				questions.GET("", hm.questionHandler.ListQuestions)
				questions.GET("/export", hm.questionHandler.ExportQuestions)
				questions.POST("/import", hm.questionHandler.ImportQuestions)
				questions.GET("/:id", hm.questionHandler.GetQuestion)
				questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
				questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
				questions.POST("/:id/duplicate", hm.questionHandler.DuplicateQuestion)
				questions.PUT("/:id/active", hm.questionHandler.SetQuestionActive)
			}
		}
	}
}
