package firestore

import (
	"time"

	"fittrack-go/internal/domain/catalog"
	"fittrack-go/internal/domain/dailylog"
	"fittrack-go/internal/domain/profile"
	"fittrack-go/internal/domain/workout"
)

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Firestore returns integers as int64 and doubles as float64; clients written
// in JavaScript store whole numbers as either.
func getFloat(m map[string]interface{}, key string) (float64, bool) {
	switch n := m[key].(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func getInt(m map[string]interface{}, key string) int {
	v, _ := getFloat(m, key)
	return int(v)
}

func getTime(m map[string]interface{}, key string) time.Time {
	if v, ok := m[key]; ok {
		if t, ok := v.(time.Time); ok {
			return t.UTC()
		}
	}
	return time.Time{}
}

func getDate(m map[string]interface{}, key string) time.Time {
	parsed, err := dailylog.ParseDate(getString(m, key))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// --- DailyLog ---

func DailyLogToFirestore(l *dailylog.DailyLog) map[string]interface{} {
	m := map[string]interface{}{
		"date":      l.Date.Format(dailylog.DateLayout),
		"workouts":  l.Workouts,
		"meals":     l.Meals,
		"hasPR":     l.HasPR,
		"notes":     l.Notes,
		"updatedAt": firestoreServerTime,
	}
	if l.WeightKg != nil {
		m["weightKg"] = *l.WeightKg
	} else {
		m["weightKg"] = deleteField
	}
	if !l.CreatedAt.IsZero() {
		m["createdAt"] = l.CreatedAt
	}
	return m
}

func FirestoreToDailyLog(userID string) FromFirestoreFunc[dailylog.DailyLog] {
	return func(id string, m map[string]interface{}) *dailylog.DailyLog {
		l := &dailylog.DailyLog{
			UserID:    userID,
			Date:      getDate(m, "date"),
			Workouts:  getInt(m, "workouts"),
			Meals:     getInt(m, "meals"),
			HasPR:     getBool(m, "hasPR"),
			Notes:     getString(m, "notes"),
			CreatedAt: getTime(m, "createdAt"),
			UpdatedAt: getTime(m, "updatedAt"),
		}
		if l.Date.IsZero() {
			l.Date, _ = dailylog.ParseDate(id)
		}
		if w, ok := getFloat(m, "weightKg"); ok {
			l.WeightKg = &w
		}
		return l
	}
}

// --- Workout ---

func WorkoutToFirestore(w *workout.Workout) map[string]interface{} {
	exercises := make([]interface{}, 0, len(w.Exercises))
	for _, ex := range w.Exercises {
		sets := make([]interface{}, 0, len(ex.Sets))
		for _, set := range ex.Sets {
			sets = append(sets, map[string]interface{}{
				"setNumber": set.Number,
				"reps":      set.Reps,
				"weightKg":  set.WeightKg,
			})
		}
		exercises = append(exercises, map[string]interface{}{
			"exerciseId":     ex.ExerciseID,
			"exerciseName":   ex.ExerciseName,
			"category":       string(ex.Category),
			"sets":           sets,
			"caloriesBurned": ex.CaloriesBurned,
		})
	}

	return map[string]interface{}{
		"date":            w.Date.Format(dailylog.DateLayout),
		"exercises":       exercises,
		"totalCalories":   w.TotalCalories,
		"durationMinutes": w.DurationMinutes,
		"notes":           w.Notes,
		"createdAt":       w.CreatedAt,
	}
}

func FirestoreToWorkout(userID string) FromFirestoreFunc[workout.Workout] {
	return func(id string, m map[string]interface{}) *workout.Workout {
		w := &workout.Workout{
			ID:              id,
			UserID:          userID,
			Date:            getDate(m, "date"),
			TotalCalories:   getInt(m, "totalCalories"),
			DurationMinutes: getInt(m, "durationMinutes"),
			Notes:           getString(m, "notes"),
			CreatedAt:       getTime(m, "createdAt"),
		}

		raw, _ := m["exercises"].([]interface{})
		for _, item := range raw {
			em, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			ex := workout.Exercise{
				ExerciseID:     getString(em, "exerciseId"),
				ExerciseName:   getString(em, "exerciseName"),
				Category:       catalog.Category(getString(em, "category")),
				CaloriesBurned: getInt(em, "caloriesBurned"),
			}
			rawSets, _ := em["sets"].([]interface{})
			for _, s := range rawSets {
				sm, ok := s.(map[string]interface{})
				if !ok {
					continue
				}
				weight, _ := getFloat(sm, "weightKg")
				ex.Sets = append(ex.Sets, workout.Set{
					Number:   getInt(sm, "setNumber"),
					Reps:     getInt(sm, "reps"),
					WeightKg: weight,
				})
			}
			w.Exercises = append(w.Exercises, ex)
		}
		return w
	}
}

// --- Profile ---

func ProfileToFirestore(p *profile.Profile) map[string]interface{} {
	return map[string]interface{}{
		"displayName":          p.Name,
		"athleteType":          p.AthleteType,
		"weightKg":             p.WeightKg,
		"heightCm":             p.HeightCm,
		"weeklyWorkoutsTarget": p.WeeklyWorkoutsTarget,
		"weeklyMealsTarget":    p.WeeklyMealsTarget,
		"preferredWeightUnit":  p.WeightUnit,
		"preferredHeightUnit":  p.HeightUnit,
		"darkMode":             p.DarkMode,
		"onboardingComplete":   p.Onboarded,
		"updatedAt":            firestoreServerTime,
	}
}

func FirestoreToProfile(id string, m map[string]interface{}) *profile.Profile {
	p := &profile.Profile{
		UserID:               id,
		Name:                 getString(m, "displayName"),
		Email:                getString(m, "email"),
		AvatarURL:            getString(m, "avatarUrl"),
		AthleteType:          getString(m, "athleteType"),
		WeeklyWorkoutsTarget: getInt(m, "weeklyWorkoutsTarget"),
		WeeklyMealsTarget:    getInt(m, "weeklyMealsTarget"),
		WeightUnit:           getString(m, "preferredWeightUnit"),
		HeightUnit:           getString(m, "preferredHeightUnit"),
		DarkMode:             getBool(m, "darkMode"),
		Onboarded:            getBool(m, "onboardingComplete"),
		CreatedAt:            getTime(m, "createdAt"),
		UpdatedAt:            getTime(m, "updatedAt"),
	}
	p.WeightKg, _ = getFloat(m, "weightKg")
	p.HeightCm, _ = getFloat(m, "heightCm")
	return p
}
