package workout

import (
	"time"

	"fittrack-go/internal/domain/catalog"
)

const (
	defaultReps     = 10
	defaultWeightKg = 0

	minutesPerSetEstimate = 2.5
)

// Upper bounds for user-entered set values. They keep the estimate within
// int range.
const (
	MaxSets     = 1000
	MaxReps     = 10000
	MaxWeightKg = 10000
)

// Set is a single set within an exercise. Number is 1-based and always equals
// the set's position in its exercise.
type Set struct {
	Number   int     `json:"set_number" firestore:"setNumber"`
	Reps     int     `json:"reps" firestore:"reps"`
	WeightKg float64 `json:"weight_kg" firestore:"weightKg"`
}

// Exercise is an exercise inside a workout. Name and category are copied from
// the catalog when the exercise is added and are not re-resolved later.
type Exercise struct {
	ExerciseID     string           `json:"exercise_id" firestore:"exerciseId"`
	ExerciseName   string           `json:"exercise_name" firestore:"exerciseName"`
	Category       catalog.Category `json:"category" firestore:"category"`
	Sets           []Set            `json:"sets" firestore:"sets"`
	CaloriesBurned int              `json:"calories_burned" firestore:"caloriesBurned"`
}

// Workout is a saved session. It is immutable once persisted.
type Workout struct {
	ID              string     `gorm:"primaryKey"`
	UserID          string     `gorm:"index;not null"`
	Date            time.Time  `gorm:"type:date;index;not null"`
	Exercises       []Exercise `gorm:"serializer:json;type:jsonb;not null"`
	TotalCalories   int        `gorm:"not null;default:0"`
	DurationMinutes int        `gorm:"not null;default:0"`
	Notes           string     `gorm:"not null;default:''"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
}

// ListFilter defines filtering options for listing workouts
type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type SetInput struct {
	Reps     int
	WeightKg float64
}

type ExerciseInput struct {
	ExerciseID string
	Sets       []SetInput
}

// CreateWorkoutInput represents input for saving a complete workout in one call
type CreateWorkoutInput struct {
	UserID    string
	Date      time.Time
	Notes     string
	Exercises []ExerciseInput
}

type SaveDraftInput struct {
	UserID string
	Date   time.Time
	Notes  string
}

type UpdateSetInput struct {
	UserID        string
	ExerciseIndex int
	SetIndex      int
	Field         SetField
	Value         float64
}
