package services

import (
	"log/slog"

	"github.com/quizflow/quiz-service/internal/events"
	"github.com/quizflow/quiz-service/internal/repositories"
	"github.com/quizflow/quiz-service/internal/session"
	"github.com/quizflow/quiz-service/internal/validator"
)

type serviceManager struct {
	question     QuestionService
	quiz         QuizService
	reporting    ReportingService
	importExport ImportExportService
}

// NewServiceManager wires all services over the shared repository, session
// store and event publisher.
func NewServiceManager(
	repo repositories.Repository,
	sessions session.Store,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	question := NewQuestionService(repo, logger, validator)
	return &serviceManager{
		question:     question,
		quiz:         NewQuizService(repo, sessions, question, publisher, logger, validator),
		reporting:    NewReportingService(repo, logger),
		importExport: NewImportExportService(repo, logger, validator),
	}
}

func (m *serviceManager) Question() QuestionService         { return m.question }
func (m *serviceManager) Quiz() QuizService                 { return m.quiz }
func (m *serviceManager) Reporting() ReportingService       { return m.reporting }
func (m *serviceManager) ImportExport() ImportExportService { return m.importExport }
