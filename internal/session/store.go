package session

import (
	"context"
	"errors"
	"time"

	"github.com/quizflow/quiz-service/internal/cache"
	"github.com/quizflow/quiz-service/internal/models"
)

// Settings is the per-attempt quiz configuration chosen before a quiz begins.
type Settings struct {
	NumQuestions int    `json:"num_questions" validate:"required,min=1,max=50"`
	Difficulty   string `json:"difficulty" validate:"required,difficulty_filter"`
	RandomOrder  bool   `json:"random_order"`
}

// DifficultyAll means no difficulty filter.
const DifficultyAll = "ALL"

// DefaultSettings matches the defaults the quiz uses when a user starts a quiz
// without configuring one.
func DefaultSettings() Settings {
	return Settings{
		NumQuestions: 10,
		Difficulty:   DifficultyAll,
		RandomOrder:  true,
	}
}

// DifficultyFilter translates the setting into an optional repository filter.
func (s Settings) DifficultyFilter() *models.DifficultyLevel {
	if s.Difficulty == "" || s.Difficulty == DifficultyAll {
		return nil
	}
	level := models.DifficultyLevel(s.Difficulty)
	return &level
}

// State holds one user's transient quiz state between requests: the chosen
// settings, the presented question snapshots, the start timestamp, and the
// pointer to a freshly written score record awaiting its one results render.
type State struct {
	Settings        *Settings                 `json:"settings,omitempty"`
	Questions       []models.QuestionSnapshot `json:"questions,omitempty"`
	StartedAt       *time.Time                `json:"started_at,omitempty"`
	PendingResultID *uint                     `json:"pending_result_id,omitempty"`
}

// Presented reports whether a quiz is currently presented and unanswered.
func (s *State) Presented() bool {
	return len(s.Questions) > 0
}

// Store persists per-user quiz state. State is private to the user and expires
// with the session TTL.
type Store interface {
	Get(ctx context.Context, userID string) (*State, error)
	Save(ctx context.Context, userID string, state *State) error
	Clear(ctx context.Context, userID string) error
}

type redisStore struct {
	cache cache.CacheService
	ttl   time.Duration
}

// NewRedisStore builds a Store over the shared cache service.
func NewRedisStore(cacheService cache.CacheService, ttl time.Duration) Store {
	return &redisStore{
		cache: cacheService,
		ttl:   ttl,
	}
}

func (s *redisStore) Get(ctx context.Context, userID string) (*State, error) {
	var state State
	err := s.cache.Get(ctx, s.key(userID), &state)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return &State{}, nil
		}
		return nil, err
	}
	return &state, nil
}

func (s *redisStore) Save(ctx context.Context, userID string, state *State) error {
	return s.cache.Set(ctx, s.key(userID), state, s.ttl)
}

func (s *redisStore) Clear(ctx context.Context, userID string) error {
	return s.cache.Delete(ctx, s.key(userID))
}

func (s *redisStore) key(userID string) string {
	return "quiz:session:" + userID
}
