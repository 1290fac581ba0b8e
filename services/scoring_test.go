package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePoints(t *testing.T) {
	tests := []struct {
		name          string
		isCorrect     bool
		timeRemaining float64
		want          int
	}{
		{"instant correct answer gets full bonus", true, 15, 1000},
		{"ten seconds remaining", true, 10, 833},
		{"five seconds remaining", true, 5, 666},
		{"one second remaining", true, 1, 533},
		{"no time remaining still earns base points", true, 0, 500},
		{"incorrect scores zero", false, 15, 0},
		{"incorrect with no time scores zero", false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePoints(tt.isCorrect, tt.timeRemaining, QuestionTimeLimit, PointsPerCorrect, MaxSpeedBonus)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculatePointsMonotonicInTimeRemaining(t *testing.T) {
	previous := 0
	for remaining := 0.0; remaining <= QuestionTimeLimit; remaining += 0.5 {
		points := CalculatePoints(true, remaining, QuestionTimeLimit, PointsPerCorrect, MaxSpeedBonus)
		assert.GreaterOrEqual(t, points, previous, "points must not decrease as time remaining grows")
		assert.GreaterOrEqual(t, points, PointsPerCorrect)
		assert.LessOrEqual(t, points, PointsPerCorrect+MaxSpeedBonus)
		previous = points
	}
}

func TestClampTimeRemaining(t *testing.T) {
	assert.Equal(t, 0.0, ClampTimeRemaining(-3, 15))
	assert.Equal(t, 15.0, ClampTimeRemaining(20, 15))
	assert.Equal(t, 7.5, ClampTimeRemaining(7.5, 15))
}
