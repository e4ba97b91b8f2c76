package services

import (
	"context"
	"io"
	"time"

	"github.com/quizflow/quiz-service/internal/models"
	"github.com/quizflow/quiz-service/internal/repositories"
	"github.com/quizflow/quiz-service/internal/session"
)

// ===== QUESTION STORE =====

type CreateQuestionRequest struct {
	Text          string                 `json:"text" validate:"required,min=10"`
	ChoiceA       string                 `json:"choice_a" validate:"required,max=200"`
	ChoiceB       string                 `json:"choice_b" validate:"required,max=200"`
	ChoiceC       string                 `json:"choice_c" validate:"required,max=200"`
	ChoiceD       string                 `json:"choice_d" validate:"required,max=200"`
	CorrectAnswer models.AnswerTag       `json:"correct_answer" validate:"required,answer_tag"`
	Difficulty    models.DifficultyLevel `json:"difficulty" validate:"omitempty,difficulty_level"`
}

type UpdateQuestionRequest struct {
	Text          *string                 `json:"text" validate:"omitempty,min=10"`
	ChoiceA       *string                 `json:"choice_a" validate:"omitempty,max=200"`
	ChoiceB       *string                 `json:"choice_b" validate:"omitempty,max=200"`
	ChoiceC       *string                 `json:"choice_c" validate:"omitempty,max=200"`
	ChoiceD       *string                 `json:"choice_d" validate:"omitempty,max=200"`
	CorrectAnswer *models.AnswerTag       `json:"correct_answer" validate:"omitempty,answer_tag"`
	Difficulty    *models.DifficultyLevel `json:"difficulty" validate:"omitempty,difficulty_level"`
}

// QuestionService curates the question store.
type QuestionService interface {
	Create(ctx context.Context, req *CreateQuestionRequest) (*models.Question, error)
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	Update(ctx context.Context, id uint, req *UpdateQuestionRequest) (*models.Question, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error)

	ListActive(ctx context.Context, difficulty *models.DifficultyLevel) ([]*models.Question, error)
	SelectSubset(ctx context.Context, count int, difficulty *models.DifficultyLevel, random bool) ([]*models.Question, error)
	CountActive(ctx context.Context, difficulty *models.DifficultyLevel) (int64, error)

	Duplicate(ctx context.Context, id uint) (*models.Question, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

// ===== QUIZ SESSION FLOW =====

// PresentedQuestion is a question as shown to the quiz taker: no correct tag.
type PresentedQuestion struct {
	ID      uint                        `json:"id"`
	Text    string                      `json:"text"`
	Choices map[models.AnswerTag]string `json:"choices"`
}

// QuizView is the presented quiz form.
type QuizView struct {
	Questions []PresentedQuestion `json:"questions"`
	Count     int                 `json:"count"`
	Settings  session.Settings    `json:"settings"`
}

// SubmitQuizRequest carries the answer selections keyed by question id.
type SubmitQuizRequest struct {
	Answers map[uint]models.AnswerTag `json:"answers" validate:"required"`
}

// QuestionResult is the per-question breakdown on the results page.
type QuestionResult struct {
	Question      string                      `json:"question"`
	Choices       map[models.AnswerTag]string `json:"choices"`
	UserAnswer    models.AnswerTag            `json:"user_answer"`
	CorrectAnswer models.AnswerTag            `json:"correct_answer"`
	IsCorrect     bool                        `json:"is_correct"`
	CorrectText   string                      `json:"correct_text"`
	UserText      string                      `json:"user_text"`
}

// QuizResult is the rendered outcome of a completed attempt.
type QuizResult struct {
	RecordID       uint             `json:"record_id"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	Percentage     float64          `json:"percentage"`
	Grade          string           `json:"grade"`
	Passed         bool             `json:"passed"`
	TimeTaken      *time.Duration   `json:"time_taken,omitempty"`
	CompletedAt    time.Time        `json:"completed_at"`
	Details        []QuestionResult `json:"details"`
}

// QuizService orchestrates the settings -> presentation -> scoring -> results
// flow. All state between requests lives in the per-user session store.
type QuizService interface {
	Configure(ctx context.Context, userID string, settings session.Settings) error
	Start(ctx context.Context, userID string) (*QuizView, error)
	Submit(ctx context.Context, userID string, req *SubmitQuizRequest) (uint, error)
	Results(ctx context.Context, userID string) (*QuizResult, error)
}

// ===== AGGREGATION / REPORTING =====

// ScoreSummary is one score record as listed in history views.
type ScoreSummary struct {
	ID             uint           `json:"id"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Percentage     float64        `json:"percentage"`
	Grade          string         `json:"grade"`
	Passed         bool           `json:"passed"`
	TimeTaken      *time.Duration `json:"time_taken,omitempty"`
	CompletedAt    time.Time      `json:"completed_at"`
	Username       string         `json:"username,omitempty"`
}

type UserHistory struct {
	Scores                 []ScoreSummary `json:"scores"`
	TotalAttempts          int            `json:"total_attempts"`
	BestScore              *ScoreSummary  `json:"best_score,omitempty"`
	AverageScore           float64        `json:"average_score"`
	TotalQuestionsAnswered int            `json:"total_questions_answered"`
	TotalCorrectAnswers    int            `json:"total_correct_answers"`
	OverallAccuracy        float64        `json:"overall_accuracy"`
}

type Leaderboard struct {
	TopScores        []repositories.LeaderboardEntry `json:"top_scores"`
	RecentHighScores []ScoreSummary                  `json:"recent_high_scores"`
}

type HomeStats struct {
	TotalQuestions int            `json:"total_questions"`
	UserAttempts   int            `json:"user_attempts"`
	BestScore      *ScoreSummary  `json:"best_score,omitempty"`
	AverageScore   float64        `json:"average_score"`
	RecentScores   []ScoreSummary `json:"recent_scores,omitempty"`
}

// ReportingService computes history, leaderboard and home-page aggregates.
type ReportingService interface {
	HomeStats(ctx context.Context, userID string) (*HomeStats, error)
	UserHistory(ctx context.Context, userID string) (*UserHistory, error)
	Leaderboard(ctx context.Context) (*Leaderboard, error)
}

// ===== IMPORT / EXPORT =====

// ImportExportService handles admin bulk question transfer.
type ImportExportService interface {
	ImportQuestions(ctx context.Context, reader io.Reader, filename string) (*models.ImportSummary, error)
	ExportQuestionsCSV(ctx context.Context, filters repositories.QuestionFilters) ([]byte, error)
	ExportQuestionsExcel(ctx context.Context, filters repositories.QuestionFilters) ([]byte, error)
}

// ===== SERVICE MANAGER =====

// ServiceManager aggregates all services for handler wiring.
type ServiceManager interface {
	Question() QuestionService
	Quiz() QuizService
	Reporting() ReportingService
	ImportExport() ImportExportService
}
