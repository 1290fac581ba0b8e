package services

import "math"

// Game-wide scoring constants. A correct answer is worth the base points plus
// a speed bonus proportional to the time remaining, so the range per correct
// answer is [500, 1000]; incorrect answers and timeouts score zero.
const (
	QuestionTimeLimit = 15 // seconds
	PointsPerCorrect  = 500
	MaxSpeedBonus     = 500
)

// CalculatePoints computes the points for one answer. The caller clamps
// timeRemainingSec to [0, timeLimitSec] beforehand; a zero time limit is a
// caller error.
func CalculatePoints(isCorrect bool, timeRemainingSec, timeLimitSec float64, basePoints, maxSpeedBonus int) int {
	if !isCorrect {
		return 0
	}

	speedBonus := int(math.Floor(timeRemainingSec / timeLimitSec * float64(maxSpeedBonus)))
	return basePoints + speedBonus
}

// ClampTimeRemaining bounds a time-remaining value to the scoreable window.
func ClampTimeRemaining(timeRemainingSec, timeLimitSec float64) float64 {
	if timeRemainingSec < 0 {
		return 0
	}
	if timeRemainingSec > timeLimitSec {
		return timeLimitSec
	}
	return timeRemainingSec
}
