package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeforeSaveRecomputesPercentage(t *testing.T) {
	record := &ScoreRecord{Score: 2, TotalQuestions: 3, Percentage: 100}

	err := record.BeforeSave(nil)

	assert.NoError(t, err)
	assert.InDelta(t, 66.666, record.Percentage, 0.01)
}

func TestBeforeSaveZeroTotal(t *testing.T) {
	record := &ScoreRecord{Score: 0, TotalQuestions: 0, Percentage: 42}

	err := record.BeforeSave(nil)

	assert.NoError(t, err)
	assert.Equal(t, float64(0), record.Percentage)
}

func TestGradeForThresholds(t *testing.T) {
	tests := []struct {
		percentage float64
		grade      string
	}{
		{100, "A"},
		{90, "A"},
		{89.999, "B"},
		{80, "B"},
		{79.999, "C"},
		{70, "C"},
		{69.999, "D"},
		{60, "D"},
		{59.999, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.grade, GradeFor(tt.percentage), "percentage %v", tt.percentage)
	}
}

func TestPassed(t *testing.T) {
	passed := &ScoreRecord{Percentage: 60}
	failed := &ScoreRecord{Percentage: 59.999}

	assert.True(t, passed.Passed())
	assert.False(t, failed.Passed())
}

func TestGradeMonotonic(t *testing.T) {
	order := map[string]int{"F": 0, "D": 1, "C": 2, "B": 3, "A": 4}

	previous := "F"
	for pct := 0.0; pct <= 100; pct += 0.5 {
		grade := GradeFor(pct)
		assert.GreaterOrEqual(t, order[grade], order[previous], "grade regressed at %v", pct)
		previous = grade
	}
}
