package dailylog

import "errors"

var (
	ErrLogNotFound      = errors.New("daily log not found")
	ErrInvalidLog       = errors.New("invalid daily log")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrInvalidDateRange = errors.New("from must not be after to")
)
