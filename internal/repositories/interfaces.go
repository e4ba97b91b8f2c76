package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/quizflow/quiz-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type QuestionFilters struct {
	Difficulty *models.DifficultyLevel `json:"difficulty"`
	IsActive   *bool                   `json:"is_active"`
	DateFrom   *time.Time              `json:"date_from"`
	DateTo     *time.Time              `json:"date_to"`
	Limit      int                     `json:"limit"`
	Offset     int                     `json:"offset"`
	SortBy     string                  `json:"sort_by"`    // "created_at", "difficulty"
	SortOrder  string                  `json:"sort_order"` // "asc", "desc"
}

type ScoreFilters struct {
	UserID   *string    `json:"user_id"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// ===== AGGREGATE RESULT STRUCTS =====

// UserScoreStats aggregates a user's score records. Totals are summed from raw
// counts so overall accuracy is not a mean of percentages.
type UserScoreStats struct {
	TotalAttempts          int     `json:"total_attempts"`
	AveragePercentage      float64 `json:"average_percentage"`
	TotalQuestionsAnswered int     `json:"total_questions_answered"`
	TotalCorrectAnswers    int     `json:"total_correct_answers"`
}

// LeaderboardEntry is one user's row in the leaderboard, grouped over all of
// their score records.
type LeaderboardEntry struct {
	UserID            string  `json:"user_id"`
	Username          string  `json:"username"`
	DisplayName       string  `json:"display_name"`
	BestPercentage    float64 `json:"best_percentage"`
	TotalAttempts     int     `json:"total_attempts"`
	AveragePercentage float64 `json:"average_percentage"`
}

// ===== REPOSITORY INTERFACES =====

// QuestionRepository covers storage operations for quiz questions.
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters QuestionFilters) ([]*models.Question, int64, error)
	GetActive(ctx context.Context, difficulty *models.DifficultyLevel, limit int) ([]*models.Question, error)
	GetRandomActive(ctx context.Context, difficulty *models.DifficultyLevel, count int) ([]*models.Question, error)
	CountActive(ctx context.Context, difficulty *models.DifficultyLevel) (int64, error)

	SetActive(ctx context.Context, id uint, active bool) error
	CreateBatch(ctx context.Context, questions []*models.Question) error
}

// ScoreRepository covers score records. Records are insert-only; there is no
// update or delete path.
type ScoreRepository interface {
	Create(ctx context.Context, record *models.ScoreRecord) error
	GetByID(ctx context.Context, id uint) (*models.ScoreRecord, error)
	GetByUser(ctx context.Context, userID string, filters ScoreFilters) ([]*models.ScoreRecord, int64, error)
	GetBestByUser(ctx context.Context, userID string) (*models.ScoreRecord, error)
	GetRecentByUser(ctx context.Context, userID string, limit int) ([]*models.ScoreRecord, error)

	GetUserStats(ctx context.Context, userID string) (*UserScoreStats, error)
	GetTopScores(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
	GetRecentHighScores(ctx context.Context, minPercentage float64, limit int) ([]*models.ScoreRecord, error)
}

// UserRepository keeps the local mirror of auth-provider identities.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}

// Repository aggregates the individual repositories behind one handle.
type Repository interface {
	Question() QuestionRepository
	Score() ScoreRepository
	User() UserRepository
}

// IsNotFoundError reports whether err is the backing store's record-not-found.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
