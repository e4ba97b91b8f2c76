package services

import (
	"context"

	"github.com/quizflow/quiz-service/internal/models"
	"github.com/quizflow/quiz-service/internal/repositories"
	"github.com/quizflow/quiz-service/internal/session"
	"github.com/stretchr/testify/mock"
)

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Question), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepository) GetActive(ctx context.Context, difficulty *models.DifficultyLevel, limit int) ([]*models.Question, error) {
	args := m.Called(ctx, difficulty, limit)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetRandomActive(ctx context.Context, difficulty *models.DifficultyLevel, count int) ([]*models.Question, error) {
	args := m.Called(ctx, difficulty, count)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) CountActive(ctx context.Context, difficulty *models.DifficultyLevel) (int64, error) {
	args := m.Called(ctx, difficulty)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepository) SetActive(ctx context.Context, id uint, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, questions []*models.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

// MockScoreRepository is a mock implementation of ScoreRepository
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) Create(ctx context.Context, record *models.ScoreRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockScoreRepository) GetByID(ctx context.Context, id uint) (*models.ScoreRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScoreRecord), args.Error(1)
}

func (m *MockScoreRepository) GetByUser(ctx context.Context, userID string, filters repositories.ScoreFilters) ([]*models.ScoreRecord, int64, error) {
	args := m.Called(ctx, userID, filters)
	return args.Get(0).([]*models.ScoreRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockScoreRepository) GetBestByUser(ctx context.Context, userID string) (*models.ScoreRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScoreRecord), args.Error(1)
}

func (m *MockScoreRepository) GetRecentByUser(ctx context.Context, userID string, limit int) ([]*models.ScoreRecord, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]*models.ScoreRecord), args.Error(1)
}

func (m *MockScoreRepository) GetUserStats(ctx context.Context, userID string) (*repositories.UserScoreStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*repositories.UserScoreStats), args.Error(1)
}

func (m *MockScoreRepository) GetTopScores(ctx context.Context, limit int) ([]*repositories.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*repositories.LeaderboardEntry), args.Error(1)
}

func (m *MockScoreRepository) GetRecentHighScores(ctx context.Context, minPercentage float64, limit int) ([]*models.ScoreRecord, error) {
	args := m.Called(ctx, minPercentage, limit)
	return args.Get(0).([]*models.ScoreRecord), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// mockRepository bundles the mocks behind the Repository interface.
type mockRepository struct {
	question *MockQuestionRepository
	score    *MockScoreRepository
	user     *MockUserRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		question: new(MockQuestionRepository),
		score:    new(MockScoreRepository),
		user:     new(MockUserRepository),
	}
}

func (r *mockRepository) Question() repositories.QuestionRepository { return r.question }
func (r *mockRepository) Score() repositories.ScoreRepository       { return r.score }
func (r *mockRepository) User() repositories.UserRepository         { return r.user }

// memorySessionStore keeps session state in a map, enough for service tests.
type memorySessionStore struct {
	states map[string]session.State
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{states: make(map[string]session.State)}
}

func (s *memorySessionStore) Get(ctx context.Context, userID string) (*session.State, error) {
	state, ok := s.states[userID]
	if !ok {
		return &session.State{}, nil
	}
	copied := state
	return &copied, nil
}

func (s *memorySessionStore) Save(ctx context.Context, userID string, state *session.State) error {
	s.states[userID] = *state
	return nil
}

func (s *memorySessionStore) Clear(ctx context.Context, userID string) error {
	delete(s.states, userID)
	return nil
}
