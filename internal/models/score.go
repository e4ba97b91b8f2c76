package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionSnapshot is the frozen copy of a question stored inside a ScoreRecord.
type QuestionSnapshot struct {
	ID            uint                 `json:"id"`
	Text          string               `json:"question"`
	Choices       map[AnswerTag]string `json:"choices"`
	CorrectAnswer AnswerTag            `json:"correct_answer"`
}

// ScoreRecord is the persisted outcome of one completed quiz attempt. Rows are
// insert-only; nothing in the service updates or deletes them.
type ScoreRecord struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"not null;size:255;index"`

	Score          int     `json:"score" gorm:"not null"`
	TotalQuestions int     `json:"total_questions" gorm:"not null"`
	Percentage     float64 `json:"percentage" gorm:"not null"`

	// TimeTaken is nil when no start timestamp was recorded for the attempt.
	TimeTaken   *time.Duration `json:"time_taken"`
	CompletedAt time.Time      `json:"completed_at" gorm:"autoCreateTime;index"`

	Answers   datatypes.JSONType[map[uint]AnswerTag] `json:"answers"`
	Questions datatypes.JSONType[[]QuestionSnapshot] `json:"questions"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

func (ScoreRecord) TableName() string {
	return "score_records"
}

// BeforeSave recomputes the percentage from score/total. The stored value is
// never trusted from caller input.
func (s *ScoreRecord) BeforeSave(tx *gorm.DB) error {
	if s.TotalQuestions > 0 {
		s.Percentage = float64(s.Score) / float64(s.TotalQuestions) * 100
	} else {
		s.Percentage = 0
	}
	return nil
}

// GradeFor maps a percentage to a letter grade.
func GradeFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

// PassingPercentage is the minimum percentage counted as a pass.
const PassingPercentage = 60.0

func (s *ScoreRecord) Grade() string {
	return GradeFor(s.Percentage)
}

func (s *ScoreRecord) Passed() bool {
	return s.Percentage >= PassingPercentage
}
