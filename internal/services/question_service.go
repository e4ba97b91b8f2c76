package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quizflow/quiz-service/internal/models"
	"github.com/quizflow/quiz-service/internal/repositories"
	"github.com/quizflow/quiz-service/internal/validator"
)

type questionService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuestionService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) QuestionService {
	return &questionService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== CURATION =====

func (s *questionService) Create(ctx context.Context, req *CreateQuestionRequest) (*models.Question, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	question := &models.Question{
		Text:          req.Text,
		ChoiceA:       req.ChoiceA,
		ChoiceB:       req.ChoiceB,
		ChoiceC:       req.ChoiceC,
		ChoiceD:       req.ChoiceD,
		CorrectAnswer: req.CorrectAnswer,
		Difficulty:    req.Difficulty,
		IsActive:      true,
	}
	if question.Difficulty == "" {
		question.Difficulty = models.DifficultyMedium
	}

	if err := s.validator.ValidateQuestion(question); err != nil {
		return nil, err
	}

	if err := s.repo.Question().Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.logger.Info("Question created", "question_id", question.ID, "difficulty", question.Difficulty)
	return question, nil
}

func (s *questionService) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return question, nil
}

func (s *questionService) Update(ctx context.Context, id uint, req *UpdateQuestionRequest) (*models.Question, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	question, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		question.Text = *req.Text
	}
	if req.ChoiceA != nil {
		question.ChoiceA = *req.ChoiceA
	}
	if req.ChoiceB != nil {
		question.ChoiceB = *req.ChoiceB
	}
	if req.ChoiceC != nil {
		question.ChoiceC = *req.ChoiceC
	}
	if req.ChoiceD != nil {
		question.ChoiceD = *req.ChoiceD
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Difficulty != nil {
		question.Difficulty = *req.Difficulty
	}

	if err := s.validator.ValidateQuestion(question); err != nil {
		return nil, err
	}

	if err := s.repo.Question().Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	s.logger.Info("Question updated", "question_id", id)
	return question, nil
}

func (s *questionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Question().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	s.logger.Info("Question deleted", "question_id", id)
	return nil
}

func (s *questionService) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	questions, total, err := s.repo.Question().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, total, nil
}

// Duplicate creates an inactive copy with marked text; the original stays as is.
func (s *questionService) Duplicate(ctx context.Context, id uint) (*models.Question, error) {
	original, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	copy := original.Duplicate()
	if err := s.repo.Question().Create(ctx, copy); err != nil {
		return nil, fmt.Errorf("failed to duplicate question: %w", err)
	}

	s.logger.Info("Question duplicated", "source_id", id, "copy_id", copy.ID)
	return copy, nil
}

func (s *questionService) SetActive(ctx context.Context, id uint, active bool) error {
	if err := s.repo.Question().SetActive(ctx, id, active); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to update active flag: %w", err)
	}
	s.logger.Info("Question active flag changed", "question_id", id, "active", active)
	return nil
}

// ===== SELECTION =====

func (s *questionService) ListActive(ctx context.Context, difficulty *models.DifficultyLevel) ([]*models.Question, error) {
	questions, err := s.repo.Question().GetActive(ctx, difficulty, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list active questions: %w", err)
	}
	return questions, nil
}

// SelectSubset picks count questions from the active set, in stored order or
// uniformly random order without replacement. When fewer than count are
// available it returns all of them; callers decide whether a shortfall means
// "no quiz possible".
func (s *questionService) SelectSubset(ctx context.Context, count int, difficulty *models.DifficultyLevel, random bool) ([]*models.Question, error) {
	var questions []*models.Question
	var err error

	if random {
		questions, err = s.repo.Question().GetRandomActive(ctx, difficulty, count)
	} else {
		questions, err = s.repo.Question().GetActive(ctx, difficulty, count)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select questions: %w", err)
	}
	return questions, nil
}

func (s *questionService) CountActive(ctx context.Context, difficulty *models.DifficultyLevel) (int64, error) {
	count, err := s.repo.Question().CountActive(ctx, difficulty)
	if err != nil {
		return 0, fmt.Errorf("failed to count active questions: %w", err)
	}
	return count, nil
}
