package handler

import (
	"time"

	logdomain "fittrack-go/internal/domain/dailylog"
	nutritiondomain "fittrack-go/internal/domain/nutrition"
	profiledomain "fittrack-go/internal/domain/profile"
	summarydomain "fittrack-go/internal/domain/summary"
	workoutdomain "fittrack-go/internal/domain/workout"
	"fittrack-go/pkg/logger"
)

type Handlers struct {
	Workouts  *workoutdomain.Service
	Logs      *logdomain.Service
	Profiles  *profiledomain.Service
	Summaries *summarydomain.Service
	Nutrition *nutritiondomain.Service
	log       logger.Logger
	now       func() time.Time
}

func New(workouts *workoutdomain.Service, logs *logdomain.Service, profiles *profiledomain.Service, summaries *summarydomain.Service, nutrition *nutritiondomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Workouts:  workouts,
		Logs:      logs,
		Profiles:  profiles,
		Summaries: summaries,
		Nutrition: nutrition,
		log:       log,
		now:       time.Now,
	}
}
