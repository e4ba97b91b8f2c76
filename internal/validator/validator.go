package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/quizflow/quiz-service/internal/errors"
	"github.com/quizflow/quiz-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps struct-tag validation plus the question content checks.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new validator instance with all custom tags registered.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// Validate validates struct tags and reports failures as ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return apperrors.ToValidationErrors(err)
		}
		return err
	}
	return nil
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("difficulty_level", validateDifficultyLevel)
	validate.RegisterValidation("difficulty_filter", validateDifficultyFilter)
	validate.RegisterValidation("answer_tag", validateAnswerTag)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateDifficultyLevel(fl validator.FieldLevel) bool {
	validLevels := []models.DifficultyLevel{
		models.DifficultyEasy,
		models.DifficultyMedium,
		models.DifficultyHard,
	}

	value := fl.Field().String()
	for _, validLevel := range validLevels {
		if string(validLevel) == value {
			return true
		}
	}
	return false
}

func validateDifficultyFilter(fl validator.FieldLevel) bool {
	if fl.Field().String() == "ALL" {
		return true
	}
	return validateDifficultyLevel(fl)
}

func validateAnswerTag(fl validator.FieldLevel) bool {
	return models.IsValidTag(models.AnswerTag(fl.Field().String()))
}
