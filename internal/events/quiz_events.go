package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

type EventType string

const (
	EventQuizCompleted EventType = "quiz.completed"
)

// QuizCompletedEvent is emitted after a score record has been written.
// Consumers (notification service, analytics pipelines) are external.
type QuizCompletedEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`

	UserID         string  `json:"user_id"`
	ScoreRecordID  uint    `json:"score_record_id"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
	Grade          string  `json:"grade"`
	Passed         bool    `json:"passed"`
}

// NewQuizCompletedEvent builds the event envelope with a fresh id.
func NewQuizCompletedEvent(userID string, recordID uint, score, total int, percentage float64, grade string, passed bool) *QuizCompletedEvent {
	return &QuizCompletedEvent{
		ID:             watermill.NewUUID(),
		Type:           EventQuizCompleted,
		Source:         "quiz-service",
		Timestamp:      time.Now().UTC(),
		UserID:         userID,
		ScoreRecordID:  recordID,
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		Grade:          grade,
		Passed:         passed,
	}
}
