package services

import (
	"context"
	"testing"
	"time"

	"github.com/quizflow/quiz-service/internal/models"
	"github.com/quizflow/quiz-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportingServiceForTest(t *testing.T) (ReportingService, *mockRepository) {
	t.Helper()

	repo := newMockRepository()
	svc := NewReportingService(repo, testLogger())
	return svc, repo
}

func scoreRecord(id uint, userID string, score, total int, completedAt time.Time) *models.ScoreRecord {
	percentage := 0.0
	if total > 0 {
		percentage = float64(score) / float64(total) * 100
	}
	return &models.ScoreRecord{
		ID:             id,
		UserID:         userID,
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		CompletedAt:    completedAt,
		User:           models.User{ID: userID, Username: "alice"},
	}
}

func TestReportingService_UserHistory(t *testing.T) {
	t.Run("aggregates across attempts", func(t *testing.T) {
		svc, repo := newReportingServiceForTest(t)
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		records := []*models.ScoreRecord{
			scoreRecord(2, "user-1", 7, 10, now),          // 70%
			scoreRecord(1, "user-1", 19, 20, now.Add(-1)), // 95%
		}

		repo.score.On("GetByUser", mock.Anything, "user-1", repositories.ScoreFilters{}).
			Return(records, int64(2), nil).Once()
		repo.score.On("GetUserStats", mock.Anything, "user-1").
			Return(&repositories.UserScoreStats{
				TotalAttempts:          2,
				AveragePercentage:      82.5,
				TotalQuestionsAnswered: 30,
				TotalCorrectAnswers:    26,
			}, nil).Once()
		repo.score.On("GetBestByUser", mock.Anything, "user-1").
			Return(records[1], nil).Once()

		history, err := svc.UserHistory(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, 2, history.TotalAttempts)
		assert.InDelta(t, 82.5, history.AverageScore, 0.001)
		require.NotNil(t, history.BestScore)
		assert.InDelta(t, 95.0, history.BestScore.Percentage, 0.001)
		assert.Equal(t, "A", history.BestScore.Grade)

		// Accuracy comes from summed raw counts, not averaged percentages.
		assert.Equal(t, 30, history.TotalQuestionsAnswered)
		assert.Equal(t, 26, history.TotalCorrectAnswers)
		assert.InDelta(t, 86.666, history.OverallAccuracy, 0.001)

		require.Len(t, history.Scores, 2)
		assert.Equal(t, "C", history.Scores[0].Grade)
		assert.True(t, history.Scores[0].Passed)
	})

	t.Run("empty history yields zero aggregates", func(t *testing.T) {
		svc, repo := newReportingServiceForTest(t)
		repo.score.On("GetByUser", mock.Anything, "user-1", repositories.ScoreFilters{}).
			Return([]*models.ScoreRecord{}, int64(0), nil).Once()

		history, err := svc.UserHistory(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Empty(t, history.Scores)
		assert.Zero(t, history.TotalAttempts)
		assert.Zero(t, history.OverallAccuracy)
		assert.Nil(t, history.BestScore)
		repo.score.AssertNotCalled(t, "GetUserStats", mock.Anything, mock.Anything)
	})
}

func TestReportingService_Leaderboard(t *testing.T) {
	svc, repo := newReportingServiceForTest(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo.score.On("GetTopScores", mock.Anything, 20).
		Return([]*repositories.LeaderboardEntry{
			{UserID: "user-1", Username: "alice", BestPercentage: 95, TotalAttempts: 2, AveragePercentage: 82.5},
			{UserID: "user-2", Username: "bob", BestPercentage: 80, TotalAttempts: 1, AveragePercentage: 80},
		}, nil).Once()
	repo.score.On("GetRecentHighScores", mock.Anything, 80.0, 10).
		Return([]*models.ScoreRecord{
			scoreRecord(9, "user-1", 19, 20, now),
		}, nil).Once()

	board, err := svc.Leaderboard(context.Background())

	require.NoError(t, err)
	require.Len(t, board.TopScores, 2)
	assert.Equal(t, "alice", board.TopScores[0].Username)
	assert.InDelta(t, 95.0, board.TopScores[0].BestPercentage, 0.001)
	require.Len(t, board.RecentHighScores, 1)
	assert.Equal(t, "A", board.RecentHighScores[0].Grade)
}

func TestReportingService_HomeStats(t *testing.T) {
	t.Run("anonymous view shows only the pool size", func(t *testing.T) {
		svc, repo := newReportingServiceForTest(t)
		repo.question.On("CountActive", mock.Anything, (*models.DifficultyLevel)(nil)).
			Return(int64(25), nil).Once()

		stats, err := svc.HomeStats(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 25, stats.TotalQuestions)
		assert.Zero(t, stats.UserAttempts)
		repo.score.AssertNotCalled(t, "GetUserStats", mock.Anything, mock.Anything)
	})

	t.Run("includes the user's attempt summary", func(t *testing.T) {
		svc, repo := newReportingServiceForTest(t)
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		best := scoreRecord(1, "user-1", 19, 20, now)

		repo.question.On("CountActive", mock.Anything, (*models.DifficultyLevel)(nil)).
			Return(int64(25), nil).Once()
		repo.score.On("GetUserStats", mock.Anything, "user-1").
			Return(&repositories.UserScoreStats{
				TotalAttempts:          2,
				AveragePercentage:      82.5,
				TotalQuestionsAnswered: 30,
				TotalCorrectAnswers:    26,
			}, nil).Once()
		repo.score.On("GetBestByUser", mock.Anything, "user-1").
			Return(best, nil).Once()
		repo.score.On("GetRecentByUser", mock.Anything, "user-1", 5).
			Return([]*models.ScoreRecord{best}, nil).Once()

		stats, err := svc.HomeStats(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, 2, stats.UserAttempts)
		assert.InDelta(t, 82.5, stats.AverageScore, 0.001)
		require.NotNil(t, stats.BestScore)
		assert.InDelta(t, 95.0, stats.BestScore.Percentage, 0.001)
		require.Len(t, stats.RecentScores, 1)
	})

	t.Run("user without attempts gets no score sections", func(t *testing.T) {
		svc, repo := newReportingServiceForTest(t)
		repo.question.On("CountActive", mock.Anything, (*models.DifficultyLevel)(nil)).
			Return(int64(25), nil).Once()
		repo.score.On("GetUserStats", mock.Anything, "user-1").
			Return(&repositories.UserScoreStats{}, nil).Once()

		stats, err := svc.HomeStats(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Zero(t, stats.UserAttempts)
		assert.Nil(t, stats.BestScore)
		repo.score.AssertNotCalled(t, "GetBestByUser", mock.Anything, mock.Anything)
	})
}

func TestReportingService_UserHistoryNoBest(t *testing.T) {
	svc, repo := newReportingServiceForTest(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []*models.ScoreRecord{scoreRecord(1, "user-1", 5, 10, now)}

	repo.score.On("GetByUser", mock.Anything, "user-1", repositories.ScoreFilters{}).
		Return(records, int64(1), nil).Once()
	repo.score.On("GetUserStats", mock.Anything, "user-1").
		Return(&repositories.UserScoreStats{
			TotalAttempts:          1,
			AveragePercentage:      50,
			TotalQuestionsAnswered: 10,
			TotalCorrectAnswers:    5,
		}, nil).Once()
	repo.score.On("GetBestByUser", mock.Anything, "user-1").
		Return(nil, gorm.ErrRecordNotFound).Once()

	history, err := svc.UserHistory(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Nil(t, history.BestScore)
	assert.Equal(t, 1, history.TotalAttempts)
}
