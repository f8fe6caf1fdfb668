package dailylog

import "time"

const DateLayout = "2006-01-02"

// DailyLog holds one user's counters for one calendar day. (UserID, Date) is
// the natural key; saving the same day again replaces the counters.
type DailyLog struct {
	UserID    string    `gorm:"primaryKey"`
	Date      time.Time `gorm:"type:date;primaryKey"`
	Workouts  int       `gorm:"not null;default:0"`
	Meals     int       `gorm:"not null;default:0"`
	HasPR     bool      `gorm:"column:has_pr;not null;default:false"`
	WeightKg  *float64  `gorm:"type:numeric(6,2)"`
	Notes     string    `gorm:"not null;default:''"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// weeksPerMonth scales weekly targets to a monthly window.
const weeksPerMonth = 4

type ListFilter struct {
	From *time.Time
	To   *time.Time
}

type SaveLogInput struct {
	UserID   string
	Date     time.Time
	Workouts int
	Meals    int
	HasPR    bool
	WeightKg *float64
	Notes    string
}

type Totals struct {
	Workouts int
	Meals    int
	HasPR    bool
}

type Targets struct {
	Workouts int
	Meals    int
}

// Stats is the aggregated view of a period, ready for scoring.
type Stats struct {
	Period         Period    `json:"period"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	WorkoutsDone   int       `json:"workouts_done"`
	WorkoutsTarget int       `json:"workouts_target"`
	MealsDone      int       `json:"meals_done"`
	MealsTarget    int       `json:"meals_target"`
	HasPR          bool      `json:"has_pr"`
}
