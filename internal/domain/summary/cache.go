package summary

import (
	"time"

	"fittrack-go/internal/domain/dailylog"
)

type Cache interface {
	Get(key CacheKey) (Summary, bool)
	Set(key CacheKey, value Summary, ttl time.Duration)
	DeleteUser(userID string)
	Clear()
}

// CacheKey includes the period start so a new week or month never hits an
// entry computed for the previous one.
type CacheKey struct {
	UserID string
	Period dailylog.Period
	From   string
}

type noopCache struct{}

func (noopCache) Get(CacheKey) (Summary, bool) {
	return Summary{}, false
}

func (noopCache) Set(CacheKey, Summary, time.Duration) {}

func (noopCache) DeleteUser(string) {}

func (noopCache) Clear() {}
