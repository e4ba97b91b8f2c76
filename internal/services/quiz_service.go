package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/quizflow/quiz-service/internal/events"
	"github.com/quizflow/quiz-service/internal/models"
	"github.com/quizflow/quiz-service/internal/repositories"
	"github.com/quizflow/quiz-service/internal/session"
	"github.com/quizflow/quiz-service/internal/validator"
	"gorm.io/datatypes"
)

type quizService struct {
	repo      repositories.Repository
	sessions  session.Store
	questions QuestionService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewQuizService(
	repo repositories.Repository,
	sessions session.Store,
	questions QuestionService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) QuizService {
	return &quizService{
		repo:      repo,
		sessions:  sessions,
		questions: questions,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		now:       time.Now,
	}
}

// Configure validates and stores the quiz settings in the user's session.
// The requested count must not exceed the active-question count for the chosen
// difficulty; the rejection names the actual available count. Any previously
// presented, unanswered quiz is discarded.
func (s *quizService) Configure(ctx context.Context, userID string, settings session.Settings) error {
	if err := s.validator.Validate(&settings); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	available, err := s.questions.CountActive(ctx, settings.DifficultyFilter())
	if err != nil {
		return err
	}
	if int64(settings.NumQuestions) > available {
		return &NotEnoughQuestionsError{
			Requested: settings.NumQuestions,
			Available: int(available),
		}
	}

	state, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load session state: %w", err)
	}

	state.Settings = &settings
	state.Questions = nil
	state.StartedAt = nil

	if err := s.sessions.Save(ctx, userID, state); err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}

	s.logger.Info("Quiz configured",
		"user_id", userID,
		"num_questions", settings.NumQuestions,
		"difficulty", settings.Difficulty,
		"random_order", settings.RandomOrder)
	return nil
}

// Start presents the quiz. A re-render of an unanswered quiz returns the
// presentation already held in the session and does not re-record the start
// timestamp. The first presentation selects the subset, snapshots it into the
// session, and records the start time.
func (s *quizService) Start(ctx context.Context, userID string) (*QuizView, error) {
	state, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}

	settings := session.DefaultSettings()
	if state.Settings != nil {
		settings = *state.Settings
	}

	if state.Presented() {
		return s.buildQuizView(state.Questions, settings), nil
	}

	selected, err := s.questions.SelectSubset(ctx, settings.NumQuestions, settings.DifficultyFilter(), settings.RandomOrder)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	snapshots := make([]models.QuestionSnapshot, len(selected))
	for i, q := range selected {
		snapshots[i] = q.Snapshot()
	}

	startedAt := s.now()
	state.Settings = &settings
	state.Questions = snapshots
	state.StartedAt = &startedAt

	if err := s.sessions.Save(ctx, userID, state); err != nil {
		return nil, fmt.Errorf("failed to save session state: %w", err)
	}

	s.logger.Info("Quiz presented",
		"user_id", userID,
		"question_count", len(snapshots),
		"random_order", settings.RandomOrder)
	return s.buildQuizView(snapshots, settings), nil
}

// Submit scores the answers against the snapshots captured at presentation
// time. Every presented question must carry exactly one valid selection.
// On success a ScoreRecord is written and the session transitions atomically:
// settings, presentation and start time cleared, pending-result pointer set.
func (s *quizService) Submit(ctx context.Context, userID string, req *SubmitQuizRequest) (uint, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	state, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load session state: %w", err)
	}
	if !state.Presented() {
		return 0, ErrQuizNotStarted
	}

	if err := s.validateAnswers(state.Questions, req.Answers); err != nil {
		return 0, err
	}

	score := 0
	answers := make(map[uint]models.AnswerTag, len(state.Questions))
	for _, snapshot := range state.Questions {
		tag := req.Answers[snapshot.ID]
		answers[snapshot.ID] = tag
		if tag == snapshot.CorrectAnswer {
			score++
		}
	}

	var timeTaken *time.Duration
	if state.StartedAt != nil {
		elapsed := s.now().Sub(*state.StartedAt)
		timeTaken = &elapsed
	}

	if err := s.ensureUser(ctx, userID); err != nil {
		return 0, err
	}

	record := &models.ScoreRecord{
		UserID:         userID,
		Score:          score,
		TotalQuestions: len(state.Questions),
		TimeTaken:      timeTaken,
		Answers:        datatypes.NewJSONType(answers),
		Questions:      datatypes.NewJSONType(state.Questions),
	}
	if err := s.repo.Score().Create(ctx, record); err != nil {
		return 0, fmt.Errorf("failed to save score record: %w", err)
	}

	// One session write: a refresh after this point finds no presented quiz
	// and cannot double-submit from stale state.
	state.Settings = nil
	state.Questions = nil
	state.StartedAt = nil
	state.PendingResultID = &record.ID
	if err := s.sessions.Save(ctx, userID, state); err != nil {
		return 0, fmt.Errorf("failed to save session state: %w", err)
	}

	s.logger.Info("Quiz submitted",
		"user_id", userID,
		"record_id", record.ID,
		"score", score,
		"total", record.TotalQuestions,
		"percentage", record.Percentage)

	if err := s.publisher.PublishQuizCompleted(ctx, events.NewQuizCompletedEvent(
		userID, record.ID, record.Score, record.TotalQuestions,
		record.Percentage, record.Grade(), record.Passed(),
	)); err != nil {
		// Publishing is best-effort; the score record is already durable.
		s.logger.Error("Failed to publish quiz completed event", "record_id", record.ID, "error", err)
	}

	return record.ID, nil
}

// Results renders the pending score record once, then clears the pointer. A
// second visit without a fresh quiz finds no pending result.
func (s *quizService) Results(ctx context.Context, userID string) (*QuizResult, error) {
	state, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}
	if state.PendingResultID == nil {
		return nil, ErrNoResultPending
	}

	record, err := s.repo.Score().GetByID(ctx, *state.PendingResultID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get score record: %w", err)
	}
	if record.UserID != userID {
		return nil, ErrResultNotFound
	}

	result := s.buildQuizResult(record)

	state.PendingResultID = nil
	if err := s.sessions.Save(ctx, userID, state); err != nil {
		return nil, fmt.Errorf("failed to save session state: %w", err)
	}

	return result, nil
}

// ===== HELPERS =====

func (s *quizService) buildQuizView(snapshots []models.QuestionSnapshot, settings session.Settings) *QuizView {
	presented := make([]PresentedQuestion, len(snapshots))
	for i, snapshot := range snapshots {
		presented[i] = PresentedQuestion{
			ID:      snapshot.ID,
			Text:    snapshot.Text,
			Choices: snapshot.Choices,
		}
	}
	return &QuizView{
		Questions: presented,
		Count:     len(presented),
		Settings:  settings,
	}
}

// validateAnswers requires one valid tag per presented question. Answers for
// questions outside the presented set are rejected as well.
func (s *quizService) validateAnswers(snapshots []models.QuestionSnapshot, answers map[uint]models.AnswerTag) error {
	presented := make(map[uint]bool, len(snapshots))
	var missing []uint
	for _, snapshot := range snapshots {
		presented[snapshot.ID] = true
		tag, ok := answers[snapshot.ID]
		if !ok || !models.IsValidTag(tag) {
			missing = append(missing, snapshot.ID)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return &MissingAnswersError{QuestionIDs: missing}
	}

	for id := range answers {
		if !presented[id] {
			return NewValidationError("answers", "answer references a question that was not presented", id)
		}
	}
	return nil
}

// ensureUser mirrors the authenticated identity so the score record's user
// reference resolves for history and leaderboard joins.
func (s *quizService) ensureUser(ctx context.Context, userID string) error {
	identity, ok := UserIdentityFromContext(ctx)
	if !ok {
		identity = UserIdentity{ID: userID, Username: userID}
	}
	user := &models.User{
		ID:          identity.ID,
		Username:    identity.Username,
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
	}
	if err := s.repo.User().Upsert(ctx, user); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (s *quizService) buildQuizResult(record *models.ScoreRecord) *QuizResult {
	answers := record.Answers.Data()
	snapshots := record.Questions.Data()

	details := make([]QuestionResult, len(snapshots))
	for i, snapshot := range snapshots {
		userAnswer := answers[snapshot.ID]
		details[i] = QuestionResult{
			Question:      snapshot.Text,
			Choices:       snapshot.Choices,
			UserAnswer:    userAnswer,
			CorrectAnswer: snapshot.CorrectAnswer,
			IsCorrect:     userAnswer == snapshot.CorrectAnswer,
			CorrectText:   snapshot.Choices[snapshot.CorrectAnswer],
			UserText:      snapshot.Choices[userAnswer],
		}
	}

	return &QuizResult{
		RecordID:       record.ID,
		Score:          record.Score,
		TotalQuestions: record.TotalQuestions,
		Percentage:     record.Percentage,
		Grade:          record.Grade(),
		Passed:         record.Passed(),
		TimeTaken:      record.TimeTaken,
		CompletedAt:    record.CompletedAt,
		Details:        details,
	}
}
