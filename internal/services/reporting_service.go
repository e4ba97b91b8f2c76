package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quizflow/quiz-service/internal/models"
	"github.com/quizflow/quiz-service/internal/repositories"
)

const (
	leaderboardSize      = 20
	recentHighScoreCount = 10
	highScoreThreshold   = 80.0
	homeRecentScoreCount = 5
)

type reportingService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportingService(repo repositories.Repository, logger *slog.Logger) ReportingService {
	return &reportingService{
		repo:   repo,
		logger: logger,
	}
}

// HomeStats returns the figures shown on the landing page: the size of the
// active question pool plus the user's own attempt summary.
func (s *reportingService) HomeStats(ctx context.Context, userID string) (*HomeStats, error) {
	totalQuestions, err := s.repo.Question().CountActive(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	stats := &HomeStats{TotalQuestions: int(totalQuestions)}
	if userID == "" {
		return stats, nil
	}

	userStats, err := s.repo.Score().GetUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}
	stats.UserAttempts = userStats.TotalAttempts
	if userStats.TotalAttempts == 0 {
		return stats, nil
	}
	stats.AverageScore = userStats.AveragePercentage

	best, err := s.repo.Score().GetBestByUser(ctx, userID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get best score: %w", err)
	}
	if best != nil {
		summary := summarize(best)
		stats.BestScore = &summary
	}

	recent, err := s.repo.Score().GetRecentByUser(ctx, userID, homeRecentScoreCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent scores: %w", err)
	}
	stats.RecentScores = summarizeAll(recent)

	return stats, nil
}

// UserHistory returns all of the user's score records (newest first) together
// with aggregates. Overall accuracy is derived from summed raw counts, not
// from averaging per-attempt percentages.
func (s *reportingService) UserHistory(ctx context.Context, userID string) (*UserHistory, error) {
	records, _, err := s.repo.Score().GetByUser(ctx, userID, repositories.ScoreFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to get score records: %w", err)
	}

	history := &UserHistory{Scores: summarizeAll(records)}
	if len(records) == 0 {
		return history, nil
	}

	stats, err := s.repo.Score().GetUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}
	history.TotalAttempts = stats.TotalAttempts
	history.AverageScore = stats.AveragePercentage
	history.TotalQuestionsAnswered = stats.TotalQuestionsAnswered
	history.TotalCorrectAnswers = stats.TotalCorrectAnswers
	if stats.TotalQuestionsAnswered > 0 {
		history.OverallAccuracy = float64(stats.TotalCorrectAnswers) / float64(stats.TotalQuestionsAnswered) * 100
	}

	best, err := s.repo.Score().GetBestByUser(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return history, nil
		}
		return nil, fmt.Errorf("failed to get best score: %w", err)
	}
	summary := summarize(best)
	history.BestScore = &summary

	return history, nil
}

// Leaderboard groups score records per user: top entries by best percentage,
// plus the most recent records above the high-score threshold.
func (s *reportingService) Leaderboard(ctx context.Context) (*Leaderboard, error) {
	top, err := s.repo.Score().GetTopScores(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get top scores: %w", err)
	}

	recent, err := s.repo.Score().GetRecentHighScores(ctx, highScoreThreshold, recentHighScoreCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent high scores: %w", err)
	}

	board := &Leaderboard{
		TopScores:        make([]repositories.LeaderboardEntry, 0, len(top)),
		RecentHighScores: summarizeAll(recent),
	}
	for _, entry := range top {
		board.TopScores = append(board.TopScores, *entry)
	}
	return board, nil
}

func summarize(record *models.ScoreRecord) ScoreSummary {
	return ScoreSummary{
		ID:             record.ID,
		Score:          record.Score,
		TotalQuestions: record.TotalQuestions,
		Percentage:     record.Percentage,
		Grade:          record.Grade(),
		Passed:         record.Passed(),
		TimeTaken:      record.TimeTaken,
		CompletedAt:    record.CompletedAt,
		Username:       record.User.Username,
	}
}

func summarizeAll(records []*models.ScoreRecord) []ScoreSummary {
	summaries := make([]ScoreSummary, len(records))
	for i, record := range records {
		summaries[i] = summarize(record)
	}
	return summaries
}
