package workout

import (
	"math"

	"fittrack-go/internal/domain/catalog"
)

const (
	secondsPerRep       = 3
	setOverheadMinutes  = 1
	loadIntensityFactor = 0.3
)

// Estimate returns the rounded energy burned for setCount sets of reps
// repetitions at the given external load. Unknown exercises burn nothing.
func Estimate(exerciseID string, setCount, reps int, weightKg float64) int {
	ex, ok := catalog.Lookup(exerciseID)
	if !ok {
		return 0
	}

	minutesPerSet := float64(reps*secondsPerRep)/60 + setOverheadMinutes
	totalMinutes := minutesPerSet * float64(setCount)
	loadMultiplier := 1 + (weightKg/100)*loadIntensityFactor

	return roundHalfUp(ex.CaloriesPerMinute * totalMinutes * loadMultiplier)
}

// roundHalfUp matches the rounding the mobile client has always shown.
func roundHalfUp(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return int(math.Floor(v + 0.5))
}
