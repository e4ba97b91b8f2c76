package services

import (
	"context"
	"strings"
	"testing"

	"github.com/quizflow/quiz-service/internal/models"
	"github.com/quizflow/quiz-service/internal/repositories"
	"github.com/quizflow/quiz-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newImportExportServiceForTest(t *testing.T) (ImportExportService, *mockRepository) {
	t.Helper()

	repo := newMockRepository()
	svc := NewImportExportService(repo, testLogger(), validator.New())
	return svc, repo
}

func TestImportExportService_ImportQuestions(t *testing.T) {
	t.Run("imports valid CSV rows", func(t *testing.T) {
		svc, repo := newImportExportServiceForTest(t)
		csvData := strings.Join([]string{
			"text,choice_a,choice_b,choice_c,choice_d,correct_answer,difficulty,is_active",
			"What is the capital of France?,London,Paris,Berlin,Madrid,B,EASY,true",
			"What is the chemical symbol for gold?,Au,Ag,Go,Gd,a,,false",
		}, "\n")

		repo.question.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]*models.Question")).
			Run(func(args mock.Arguments) {
				questions := args.Get(1).([]*models.Question)
				for i, q := range questions {
					q.ID = uint(i + 1)
				}
			}).Return(nil).Once()

		summary, err := svc.ImportQuestions(context.Background(), strings.NewReader(csvData), "questions.csv")

		require.NoError(t, err)
		assert.Equal(t, 2, summary.TotalRows)
		assert.Equal(t, 2, summary.SuccessCount)
		assert.Zero(t, summary.ErrorCount)
		assert.Equal(t, []uint{1, 2}, summary.CreatedQuestions)
	})

	t.Run("collects per-row errors and keeps valid rows", func(t *testing.T) {
		svc, repo := newImportExportServiceForTest(t)
		csvData := strings.Join([]string{
			"text,choice_a,choice_b,choice_c,choice_d,correct_answer",
			"Too short,London,Paris,Berlin,Madrid,B",
			"What is the capital of France?,London,Paris,Berlin,Madrid,B",
			"What is the capital of Spain?,London,Paris,Berlin,Madrid,X",
		}, "\n")

		repo.question.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]*models.Question")).
			Return(nil).Once()

		summary, err := svc.ImportQuestions(context.Background(), strings.NewReader(csvData), "questions.csv")

		require.NoError(t, err)
		assert.Equal(t, 3, summary.TotalRows)
		assert.Equal(t, 1, summary.SuccessCount)
		assert.Equal(t, 2, summary.ErrorCount)
		require.NotEmpty(t, summary.Errors)
		assert.Equal(t, 2, summary.Errors[0].Row)
	})

	t.Run("rejects a file without the required columns", func(t *testing.T) {
		svc, _ := newImportExportServiceForTest(t)
		csvData := "text,choice_a\nWhat is the capital of France?,London"

		_, err := svc.ImportQuestions(context.Background(), strings.NewReader(csvData), "questions.csv")

		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("rejects an unsupported format", func(t *testing.T) {
		svc, _ := newImportExportServiceForTest(t)

		_, err := svc.ImportQuestions(context.Background(), strings.NewReader("data"), "questions.pdf")

		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})
}

func TestImportExportService_ExportQuestionsCSV(t *testing.T) {
	svc, repo := newImportExportServiceForTest(t)
	repo.question.On("List", mock.Anything, repositories.QuestionFilters{}).
		Return(testQuestions(), int64(3), nil).Once()

	data, err := svc.ExportQuestionsCSV(context.Background(), repositories.QuestionFilters{})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "text,choice_a,choice_b,choice_c,choice_d,correct_answer,difficulty,is_active", lines[0])
	assert.Contains(t, lines[1], "What is the capital of France?")
	assert.Contains(t, lines[1], ",B,EASY,true")
}
