package models

import (
	"time"

	"gorm.io/gorm"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "EASY"
	DifficultyMedium DifficultyLevel = "MEDIUM"
	DifficultyHard   DifficultyLevel = "HARD"
)

// AnswerTag identifies one of the four choices of a question.
type AnswerTag string

const (
	TagA AnswerTag = "A"
	TagB AnswerTag = "B"
	TagC AnswerTag = "C"
	TagD AnswerTag = "D"
)

// AnswerTags lists the valid tags in presentation order.
var AnswerTags = []AnswerTag{TagA, TagB, TagC, TagD}

// DuplicatePrefix marks the text of a question created by duplication.
const DuplicatePrefix = "[COPY] "

type Question struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Text string `json:"text" gorm:"type:text;not null" validate:"required,min=10"`

	ChoiceA string `json:"choice_a" gorm:"not null;size:200" validate:"required,max=200"`
	ChoiceB string `json:"choice_b" gorm:"not null;size:200" validate:"required,max=200"`
	ChoiceC string `json:"choice_c" gorm:"not null;size:200" validate:"required,max=200"`
	ChoiceD string `json:"choice_d" gorm:"not null;size:200" validate:"required,max=200"`

	CorrectAnswer AnswerTag       `json:"correct_answer" gorm:"not null;size:1" validate:"required,answer_tag"`
	Difficulty    DifficultyLevel `json:"difficulty" gorm:"default:MEDIUM;size:10;index" validate:"omitempty,difficulty_level"`

	IsActive bool `json:"is_active" gorm:"default:true;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Question) TableName() string {
	return "quiz_questions"
}

// Choice pairs a tag with its display text.
type Choice struct {
	Tag  AnswerTag `json:"tag"`
	Text string    `json:"text"`
}

// Choices returns the four choices in presentation order.
func (q *Question) Choices() []Choice {
	return []Choice{
		{TagA, q.ChoiceA},
		{TagB, q.ChoiceB},
		{TagC, q.ChoiceC},
		{TagD, q.ChoiceD},
	}
}

// ChoiceMap returns the choices keyed by tag.
func (q *Question) ChoiceMap() map[AnswerTag]string {
	return map[AnswerTag]string{
		TagA: q.ChoiceA,
		TagB: q.ChoiceB,
		TagC: q.ChoiceC,
		TagD: q.ChoiceD,
	}
}

// ChoiceText returns the text for the given tag, empty when the tag is unknown.
func (q *Question) ChoiceText(tag AnswerTag) string {
	return q.ChoiceMap()[tag]
}

// CorrectChoiceText returns the text of the correct choice.
func (q *Question) CorrectChoiceText() string {
	return q.ChoiceText(q.CorrectAnswer)
}

// Snapshot freezes the question for storage inside a ScoreRecord. Later edits
// or deactivation of the question do not touch the snapshot.
func (q *Question) Snapshot() QuestionSnapshot {
	return QuestionSnapshot{
		ID:            q.ID,
		Text:          q.Text,
		Choices:       q.ChoiceMap(),
		CorrectAnswer: q.CorrectAnswer,
	}
}

// Duplicate returns an inactive copy with marked text. The copy has no ID yet.
func (q *Question) Duplicate() *Question {
	return &Question{
		Text:          DuplicatePrefix + q.Text,
		ChoiceA:       q.ChoiceA,
		ChoiceB:       q.ChoiceB,
		ChoiceC:       q.ChoiceC,
		ChoiceD:       q.ChoiceD,
		CorrectAnswer: q.CorrectAnswer,
		Difficulty:    q.Difficulty,
		IsActive:      false,
	}
}

// IsValidTag reports whether tag is one of A, B, C, D.
func IsValidTag(tag AnswerTag) bool {
	switch tag {
	case TagA, TagB, TagC, TagD:
		return true
	}
	return false
}
