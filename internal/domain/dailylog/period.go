package dailylog

import (
	"fmt"
	"strings"
	"time"
)

// Day returns the calendar day of t as midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

// WeekRange returns Monday..Sunday of the week containing now.
func WeekRange(now time.Time) (time.Time, time.Time) {
	day := Day(now)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// MonthRange returns the first and last day of the month containing now.
func MonthRange(now time.Time) (time.Time, time.Time) {
	day := Day(now)
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

func ParsePeriod(value string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(value))); p {
	case "":
		return PeriodWeekly, nil
	case PeriodWeekly, PeriodMonthly:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, value)
	}
}

// Range returns the window of the period containing now.
func (p Period) Range(now time.Time) (time.Time, time.Time, error) {
	switch p {
	case PeriodWeekly:
		from, to := WeekRange(now)
		return from, to, nil
	case PeriodMonthly:
		from, to := MonthRange(now)
		return from, to, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, p)
	}
}

// Targets scales weekly targets to the period.
func (p Period) Targets(weekly Targets) Targets {
	if p == PeriodMonthly {
		return Targets{Workouts: weekly.Workouts * weeksPerMonth, Meals: weekly.Meals * weeksPerMonth}
	}
	return weekly
}

// Aggregate sums the counters of logs and reports whether any day had a PR.
func Aggregate(logs []DailyLog) Totals {
	var totals Totals
	for _, log := range logs {
		if log.Workouts > 0 {
			totals.Workouts += log.Workouts
		}
		if log.Meals > 0 {
			totals.Meals += log.Meals
		}
		if log.HasPR {
			totals.HasPR = true
		}
	}
	return totals
}
