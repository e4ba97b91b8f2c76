package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/quizflow/quiz-service/internal/cache"
	"github.com/quizflow/quiz-service/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(cache.NewRedisCache(client, slog.Default()), time.Hour)
}

func TestGetReturnsEmptyStateWhenMissing(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Get(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Nil(t, state.Settings)
	assert.False(t, state.Presented())
	assert.Nil(t, state.PendingResultID)
}

func TestSaveRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	startedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	settings := Settings{NumQuestions: 5, Difficulty: "EASY", RandomOrder: true}
	state := &State{
		Settings:  &settings,
		StartedAt: &startedAt,
		Questions: []models.QuestionSnapshot{
			{
				ID:            3,
				Text:          "What does TCP stand for?",
				Choices:       map[models.AnswerTag]string{models.TagA: "Transmission Control Protocol"},
				CorrectAnswer: models.TagA,
			},
		},
	}

	require.NoError(t, store.Save(ctx, "user-1", state))

	loaded, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, loaded.Settings)
	assert.Equal(t, settings, *loaded.Settings)
	assert.True(t, loaded.Presented())
	require.Len(t, loaded.Questions, 1)
	assert.Equal(t, models.TagA, loaded.Questions[0].CorrectAnswer)
	assert.True(t, startedAt.Equal(*loaded.StartedAt))
}

func TestStateIsPrivatePerUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	settings := DefaultSettings()
	require.NoError(t, store.Save(ctx, "user-1", &State{Settings: &settings}))

	other, err := store.Get(ctx, "user-2")
	require.NoError(t, err)
	assert.Nil(t, other.Settings)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	resultID := uint(9)
	require.NoError(t, store.Save(ctx, "user-1", &State{PendingResultID: &resultID}))
	require.NoError(t, store.Clear(ctx, "user-1"))

	state, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, state.PendingResultID)
}

func TestDifficultyFilter(t *testing.T) {
	all := Settings{Difficulty: DifficultyAll}
	assert.Nil(t, all.DifficultyFilter())

	hard := Settings{Difficulty: "HARD"}
	filter := hard.DifficultyFilter()
	require.NotNil(t, filter)
	assert.Equal(t, models.DifficultyHard, *filter)
}
