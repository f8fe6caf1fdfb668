package summary

import (
	"time"

	"fittrack-go/internal/domain/dailylog"
	"fittrack-go/internal/domain/scoring"
)

// Summary is the scored view of one user's period.
type Summary struct {
	scoring.Result
	UserID       string          `json:"user_id"`
	Period       dailylog.Period `json:"period"`
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	AthleteType  string          `json:"athlete_type"`
	AthleteLabel string          `json:"athlete_label"`
	ComputedAt   time.Time       `json:"computed_at"`
}

// Notification tells the refresher that a user's counters may have changed.
type Notification struct {
	UserID string
}
