package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	logdomain "fittrack-go/internal/domain/dailylog"
)

func parseDateRequired(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return logdomain.ParseDate(value)
}

func parseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := logdomain.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseDateOptional returns the zero time for an empty value.
func parseDateOptional(value string) (time.Time, error) {
	parsed, err := parseDateParam(value)
	if err != nil || parsed == nil {
		return time.Time{}, err
	}
	return *parsed, nil
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

func parseIndex(value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid index")
	}
	return parsed, nil
}
