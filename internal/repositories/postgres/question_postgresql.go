package postgres

import (
	"context"

	"github.com/quizflow/quiz-service/internal/models"
	"github.com/quizflow/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

func (q QuestionPostgreSQL) Create(ctx context.Context, question *models.Question) error {
	return q.db.WithContext(ctx).Create(question).Error
}

func (q QuestionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := q.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (q QuestionPostgreSQL) GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error) {
	var questions []*models.Question
	if err := q.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (q QuestionPostgreSQL) Update(ctx context.Context, question *models.Question) error {
	return q.db.WithContext(ctx).Save(question).Error
}

func (q QuestionPostgreSQL) Delete(ctx context.Context, id uint) error {
	return q.db.WithContext(ctx).Delete(&models.Question{}, id).Error
}

func (q QuestionPostgreSQL) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	var questions []*models.Question
	var total int64

	query := q.db.WithContext(ctx).Model(&models.Question{})
	query = q.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filters.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}
	query = applyPaginationAndSort(query, sortBy, sortOrder, filters.Limit, filters.Offset)

	if err := query.Find(&questions).Error; err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// GetActive returns active questions in stored order (newest first), optionally
// filtered by difficulty. An empty result is not an error.
func (q QuestionPostgreSQL) GetActive(ctx context.Context, difficulty *models.DifficultyLevel, limit int) ([]*models.Question, error) {
	var questions []*models.Question
	query := q.activeQuery(ctx, difficulty).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// GetRandomActive returns up to count active questions in uniformly random
// order without replacement.
func (q QuestionPostgreSQL) GetRandomActive(ctx context.Context, difficulty *models.DifficultyLevel, count int) ([]*models.Question, error) {
	var questions []*models.Question
	query := q.activeQuery(ctx, difficulty).Order("RANDOM()")
	if count > 0 {
		query = query.Limit(count)
	}
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (q QuestionPostgreSQL) CountActive(ctx context.Context, difficulty *models.DifficultyLevel) (int64, error) {
	var count int64
	if err := q.activeQuery(ctx, difficulty).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (q QuestionPostgreSQL) SetActive(ctx context.Context, id uint, active bool) error {
	result := q.db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (q QuestionPostgreSQL) CreateBatch(ctx context.Context, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return q.db.WithContext(ctx).Create(questions).Error
}

func (q QuestionPostgreSQL) activeQuery(ctx context.Context, difficulty *models.DifficultyLevel) *gorm.DB {
	query := q.db.WithContext(ctx).Model(&models.Question{}).Where("is_active = ?", true)
	if difficulty != nil {
		query = query.Where("difficulty = ?", *difficulty)
	}
	return query
}

func (q QuestionPostgreSQL) applyFilters(query *gorm.DB, filters repositories.QuestionFilters) *gorm.DB {
	if filters.Difficulty != nil {
		query = query.Where("difficulty = ?", *filters.Difficulty)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	return query
}
