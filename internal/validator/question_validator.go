package validator

import (
	"strings"

	apperrors "github.com/quizflow/quiz-service/internal/errors"
	"github.com/quizflow/quiz-service/internal/models"
)

// ValidateQuestion checks the content rules that struct tags cannot express:
// the correct-answer tag must reference a populated choice, and choices must
// not be blank strings.
func (v *Validator) ValidateQuestion(question *models.Question) error {
	var errs apperrors.ValidationErrors

	if err := v.Validate(question); err != nil {
		if verrs, ok := err.(apperrors.ValidationErrors); ok {
			errs = append(errs, verrs...)
		} else {
			return err
		}
	}

	for _, choice := range question.Choices() {
		if strings.TrimSpace(choice.Text) == "" {
			errs = append(errs, *apperrors.NewValidationError(
				"choice_"+strings.ToLower(string(choice.Tag)),
				"choice cannot be empty",
				choice.Text,
			))
		}
	}

	if models.IsValidTag(question.CorrectAnswer) &&
		strings.TrimSpace(question.ChoiceText(question.CorrectAnswer)) == "" {
		errs = append(errs, *apperrors.NewValidationError(
			"correct_answer",
			"must reference a populated choice",
			string(question.CorrectAnswer),
		))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
