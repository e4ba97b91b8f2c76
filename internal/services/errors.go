package services

import (
	"errors"
	"fmt"

	apperrors "github.com/quizflow/quiz-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Question specific errors
	ErrQuestionNotFound = errors.New("question not found")

	// Quiz flow specific errors
	ErrNoQuestionsAvailable = errors.New("no questions available for the selected criteria")
	ErrQuizNotStarted       = errors.New("no quiz in progress")
	ErrNoResultPending      = errors.New("no quiz results found")
	ErrResultNotFound       = errors.New("quiz result not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// NotEnoughQuestionsError rejects quiz settings that ask for more questions
// than are currently active. The message names the actual available count.
type NotEnoughQuestionsError struct {
	Requested int `json:"requested"`
	Available int `json:"available"`
}

func (e *NotEnoughQuestionsError) Error() string {
	return fmt.Sprintf("only %d questions are available, please choose a smaller number", e.Available)
}

// MissingAnswersError rejects a quiz submission with unanswered questions.
type MissingAnswersError struct {
	QuestionIDs []uint `json:"question_ids"`
}

func (e *MissingAnswersError) Error() string {
	return fmt.Sprintf("an answer selection is required for %d question(s)", len(e.QuestionIDs))
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrResultNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	if errors.As(err, &single) {
		return true
	}
	var neq *NotEnoughQuestionsError
	if errors.As(err, &neq) {
		return true
	}
	var ma *MissingAnswersError
	return errors.As(err, &ma)
}

// IsStaleState checks if error represents a stale or missing flow state that
// should redirect the user back to a safe prior step.
func IsStaleState(err error) bool {
	return errors.Is(err, ErrQuizNotStarted) ||
		errors.Is(err, ErrNoResultPending) ||
		errors.Is(err, ErrNoQuestionsAvailable)
}
