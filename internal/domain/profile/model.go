package profile

import "time"

const (
	WeightUnitKg  = "kg"
	WeightUnitLbs = "lbs"
	HeightUnitCm  = "cm"
	HeightUnitFt  = "ft"

	DefaultAthleteType          = "Lifter"
	DefaultWeightKg             = 70
	DefaultHeightCm             = 170
	DefaultWeeklyWorkoutsTarget = 4
	DefaultWeeklyMealsTarget    = 10
)

type Profile struct {
	UserID               string    `gorm:"primaryKey" firestore:"-"`
	Name                 string    `gorm:"not null;default:''" firestore:"displayName"`
	Email                string    `gorm:"not null;default:''" firestore:"email"`
	AvatarURL            string    `gorm:"not null;default:''" firestore:"avatarUrl"`
	AthleteType          string    `gorm:"not null;default:'Lifter'" firestore:"athleteType"`
	WeightKg             float64   `gorm:"type:numeric(6,2);not null;default:70" firestore:"weightKg"`
	HeightCm             float64   `gorm:"type:numeric(6,2);not null;default:170" firestore:"heightCm"`
	WeeklyWorkoutsTarget int       `gorm:"not null;default:4" firestore:"weeklyWorkoutsTarget"`
	WeeklyMealsTarget    int       `gorm:"not null;default:10" firestore:"weeklyMealsTarget"`
	WeightUnit           string    `gorm:"not null;default:'kg'" firestore:"preferredWeightUnit"`
	HeightUnit           string    `gorm:"not null;default:'cm'" firestore:"preferredHeightUnit"`
	DarkMode             bool      `gorm:"not null;default:false" firestore:"darkMode"`
	Onboarded            bool      `gorm:"not null;default:false" firestore:"onboardingComplete"`
	CreatedAt            time.Time `gorm:"autoCreateTime" firestore:"createdAt"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" firestore:"updatedAt"`
}

// Default is the profile of a user who has not completed onboarding.
func Default(userID string) Profile {
	return Profile{
		UserID:               userID,
		AthleteType:          DefaultAthleteType,
		WeightKg:             DefaultWeightKg,
		HeightCm:             DefaultHeightCm,
		WeeklyWorkoutsTarget: DefaultWeeklyWorkoutsTarget,
		WeeklyMealsTarget:    DefaultWeeklyMealsTarget,
		WeightUnit:           WeightUnitKg,
		HeightUnit:           HeightUnitCm,
	}
}

// UpdateProfileInput carries a partial update; nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID               string
	Name                 *string
	AthleteType          *string
	WeightKg             *float64
	HeightCm             *float64
	WeeklyWorkoutsTarget *int
	WeeklyMealsTarget    *int
	WeightUnit           *string
	HeightUnit           *string
	DarkMode             *bool
	Onboarded            *bool
}
