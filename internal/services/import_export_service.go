package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quizflow/quiz-service/internal/models"
	"github.com/quizflow/quiz-service/internal/repositories"
	"github.com/quizflow/quiz-service/internal/validator"
	"github.com/xuri/excelize/v2"
)

var questionColumns = []string{
	"text", "choice_a", "choice_b", "choice_c", "choice_d",
	"correct_answer", "difficulty", "is_active",
}

type importExportService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewImportExportService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ImportExportService {
	return &importExportService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== IMPORT =====

func (s *importExportService) ImportQuestions(ctx context.Context, reader io.Reader, filename string) (*models.ImportSummary, error) {
	s.logger.Info("Starting question import", "filename", filename)

	var rows [][]string
	var err error

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		rows, err = readCSVRows(reader)
	case ".xlsx", ".xls":
		rows, err = readExcelRows(reader)
	default:
		return nil, NewValidationError("file", "unsupported file format", ext)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, NewValidationError("file", "file must have a header row and at least one data row", len(rows))
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range questionColumns[:6] {
		if _, ok := headerMap[col]; !ok {
			return nil, NewValidationError("file", "missing required column", col)
		}
	}

	summary := &models.ImportSummary{TotalRows: len(rows) - 1}
	var valid []*models.Question

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		question, rowErrs := s.parseRow(row, headerMap, rowNum)
		if len(rowErrs) > 0 {
			summary.Errors = append(summary.Errors, rowErrs...)
			summary.ErrorCount++
			continue
		}
		valid = append(valid, question)
	}

	if err := s.repo.Question().CreateBatch(ctx, valid); err != nil {
		return nil, fmt.Errorf("failed to create imported questions: %w", err)
	}

	summary.SuccessCount = len(valid)
	for _, q := range valid {
		summary.CreatedQuestions = append(summary.CreatedQuestions, q.ID)
	}

	s.logger.Info("Question import finished",
		"total_rows", summary.TotalRows,
		"success_count", summary.SuccessCount,
		"error_count", summary.ErrorCount)
	return summary, nil
}

func (s *importExportService) parseRow(row []string, headerMap map[string]int, rowNum int) (*models.Question, []models.ImportRowError) {
	cell := func(name string) string {
		idx, ok := headerMap[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	question := &models.Question{
		Text:          cell("text"),
		ChoiceA:       cell("choice_a"),
		ChoiceB:       cell("choice_b"),
		ChoiceC:       cell("choice_c"),
		ChoiceD:       cell("choice_d"),
		CorrectAnswer: models.AnswerTag(strings.ToUpper(cell("correct_answer"))),
		Difficulty:    models.DifficultyLevel(strings.ToUpper(cell("difficulty"))),
		IsActive:      true,
	}
	if question.Difficulty == "" {
		question.Difficulty = models.DifficultyMedium
	}
	if active := cell("is_active"); active != "" {
		parsed, err := strconv.ParseBool(active)
		if err != nil {
			return nil, []models.ImportRowError{{Row: rowNum, Field: "is_active", Message: "must be true or false"}}
		}
		question.IsActive = parsed
	}

	if err := s.validator.ValidateQuestion(question); err != nil {
		var rowErrs []models.ImportRowError
		if verrs, ok := err.(ValidationErrors); ok {
			for _, verr := range verrs {
				rowErrs = append(rowErrs, models.ImportRowError{Row: rowNum, Field: verr.Field, Message: verr.Message})
			}
		} else {
			rowErrs = append(rowErrs, models.ImportRowError{Row: rowNum, Message: err.Error()})
		}
		return nil, rowErrs
	}
	return question, nil
}

func readCSVRows(reader io.Reader) ([][]string, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rows, nil
}

func readExcelRows(reader io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook rows: %w", err)
	}
	return rows, nil
}

// ===== EXPORT =====

func (s *importExportService) ExportQuestionsCSV(ctx context.Context, filters repositories.QuestionFilters) ([]byte, error) {
	questions, _, err := s.repo.Question().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(questionColumns); err != nil {
		return nil, err
	}
	for _, q := range questions {
		record := []string{
			q.Text, q.ChoiceA, q.ChoiceB, q.ChoiceC, q.ChoiceD,
			string(q.CorrectAnswer), string(q.Difficulty), strconv.FormatBool(q.IsActive),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	s.logger.Info("Questions exported", "format", "csv", "count", len(questions))
	return buf.Bytes(), nil
}

func (s *importExportService) ExportQuestionsExcel(ctx context.Context, filters repositories.QuestionFilters) ([]byte, error) {
	questions, _, err := s.repo.Question().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for col, header := range questionColumns {
		cellName, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheet, cellName, header); err != nil {
			return nil, err
		}
	}
	for rowIdx, q := range questions {
		values := []interface{}{
			q.Text, q.ChoiceA, q.ChoiceB, q.ChoiceC, q.ChoiceD,
			string(q.CorrectAnswer), string(q.Difficulty), q.IsActive,
		}
		for col, value := range values {
			cellName, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(sheet, cellName, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Questions exported", "format", "xlsx", "count", len(questions))
	return buf.Bytes(), nil
}
