package postgres

import (
	"context"

	"github.com/quizflow/quiz-service/internal/models"
	"github.com/quizflow/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type ScorePostgreSQL struct {
	db *gorm.DB
}

func NewScorePostgreSQL(db *gorm.DB) repositories.ScoreRepository {
	return &ScorePostgreSQL{db: db}
}

func (s ScorePostgreSQL) Create(ctx context.Context, record *models.ScoreRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s ScorePostgreSQL) GetByID(ctx context.Context, id uint) (*models.ScoreRecord, error) {
	var record models.ScoreRecord
	if err := s.db.WithContext(ctx).Preload("User").First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s ScorePostgreSQL) GetByUser(ctx context.Context, userID string, filters repositories.ScoreFilters) ([]*models.ScoreRecord, int64, error) {
	var records []*models.ScoreRecord
	var total int64

	query := s.db.WithContext(ctx).Model(&models.ScoreRecord{}).Where("user_id = ?", userID)
	if filters.DateFrom != nil {
		query = query.Where("completed_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("completed_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, "completed_at", "desc", filters.Limit, filters.Offset)
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (s ScorePostgreSQL) GetBestByUser(ctx context.Context, userID string) (*models.ScoreRecord, error) {
	var record models.ScoreRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("percentage DESC").
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s ScorePostgreSQL) GetRecentByUser(ctx context.Context, userID string, limit int) ([]*models.ScoreRecord, error) {
	var records []*models.ScoreRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetUserStats sums raw score counts in a single aggregate query so that
// overall accuracy can be derived from totals rather than averaged percentages.
func (s ScorePostgreSQL) GetUserStats(ctx context.Context, userID string) (*repositories.UserScoreStats, error) {
	var stats repositories.UserScoreStats
	err := s.db.WithContext(ctx).
		Model(&models.ScoreRecord{}).
		Where("user_id = ?", userID).
		Select("COUNT(*) AS total_attempts, " +
			"COALESCE(AVG(percentage), 0) AS average_percentage, " +
			"COALESCE(SUM(total_questions), 0) AS total_questions_answered, " +
			"COALESCE(SUM(score), 0) AS total_correct_answers").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetTopScores groups score records per user and returns the top entries by
// best percentage.
func (s ScorePostgreSQL) GetTopScores(ctx context.Context, limit int) ([]*repositories.LeaderboardEntry, error) {
	var entries []*repositories.LeaderboardEntry
	err := s.db.WithContext(ctx).
		Model(&models.ScoreRecord{}).
		Select("score_records.user_id, users.username, users.display_name, "+
			"MAX(score_records.percentage) AS best_percentage, "+
			"COUNT(score_records.id) AS total_attempts, "+
			"AVG(score_records.percentage) AS average_percentage").
		Joins("JOIN users ON users.id = score_records.user_id").
		Group("score_records.user_id, users.username, users.display_name").
		Order("best_percentage DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s ScorePostgreSQL) GetRecentHighScores(ctx context.Context, minPercentage float64, limit int) ([]*models.ScoreRecord, error) {
	var records []*models.ScoreRecord
	if err := s.db.WithContext(ctx).
		Where("percentage >= ?", minPercentage).
		Preload("User").
		Order("completed_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
