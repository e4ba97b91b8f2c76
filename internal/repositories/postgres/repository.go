package postgres

import (
	"github.com/quizflow/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	question repositories.QuestionRepository
	score    repositories.ScoreRepository
	user     repositories.UserRepository
}

// NewRepository builds the gorm-backed repository aggregate.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		question: NewQuestionPostgreSQL(db),
		score:    NewScorePostgreSQL(db),
		user:     NewUserPostgreSQL(db),
	}
}

func (r *repository) Question() repositories.QuestionRepository { return r.question }
func (r *repository) Score() repositories.ScoreRepository       { return r.score }
func (r *repository) User() repositories.UserRepository         { return r.user }

// applyPaginationAndSort applies the shared limit/offset/sort conventions.
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	if sortBy != "" {
		order := sortBy
		if sortOrder == "desc" {
			order += " DESC"
		}
		query = query.Order(order)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
