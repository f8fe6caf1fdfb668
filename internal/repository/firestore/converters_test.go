package firestore

import (
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack-go/internal/domain/dailylog"
	"fittrack-go/internal/domain/profile"
	"fittrack-go/internal/domain/workout"
)

func TestDailyLogRoundTrip(t *testing.T) {
	weight := 81.5
	in := &dailylog.DailyLog{
		UserID:   "u1",
		Date:     time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC),
		Workouts: 1,
		Meals:    3,
		HasPR:    true,
		WeightKg: &weight,
		Notes:    "legs",
	}

	m := DailyLogToFirestore(in)
	assert.Equal(t, "2024-05-08", m["date"])
	assert.Equal(t, firestore.ServerTimestamp, m["updatedAt"])
	assert.NotContains(t, m, "createdAt")

	// Firestore hands integers back as int64.
	m["workouts"] = int64(1)
	m["meals"] = int64(3)
	out := FirestoreToDailyLog("u1")("2024-05-08", m)

	assert.Equal(t, "u1", out.UserID)
	assert.True(t, out.Date.Equal(in.Date))
	assert.Equal(t, 1, out.Workouts)
	assert.Equal(t, 3, out.Meals)
	assert.True(t, out.HasPR)
	require.NotNil(t, out.WeightKg)
	assert.Equal(t, 81.5, *out.WeightKg)
}

func TestDailyLogWithoutWeightDeletesField(t *testing.T) {
	m := DailyLogToFirestore(&dailylog.DailyLog{Date: time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)})
	assert.Equal(t, firestore.Delete, m["weightKg"])
}

func TestFirestoreToDailyLogFallsBackToDocID(t *testing.T) {
	out := FirestoreToDailyLog("u1")("2024-02-29", map[string]interface{}{"workouts": float64(2)})
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), out.Date)
	assert.Equal(t, 2, out.Workouts)
	assert.Nil(t, out.WeightKg)
}

func TestWorkoutRoundTrip(t *testing.T) {
	var s workout.Session
	require.NoError(t, s.AddExercise("bench-press"))
	require.NoError(t, s.AddSet(0))
	require.NoError(t, s.UpdateSet(0, 1, workout.SetFieldWeight, 60))
	in := s.Finalize("u1", time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC), "push", time.Date(2024, 5, 8, 18, 0, 0, 0, time.UTC))

	m := WorkoutToFirestore(&in)
	assert.Equal(t, "2024-05-08", m["date"])

	out := FirestoreToWorkout("u1")(in.ID, m)
	assert.Equal(t, in, *out)
}

func TestFirestoreToWorkoutSkipsMalformedEntries(t *testing.T) {
	m := map[string]interface{}{
		"date": "2024-05-08",
		"exercises": []interface{}{
			"garbage",
			map[string]interface{}{
				"exerciseId": "squat",
				"sets": []interface{}{
					42,
					map[string]interface{}{"setNumber": int64(1), "reps": int64(5), "weightKg": int64(100)},
				},
			},
		},
	}

	out := FirestoreToWorkout("u1")("w1", m)
	require.Len(t, out.Exercises, 1)
	assert.Equal(t, []workout.Set{{Number: 1, Reps: 5, WeightKg: 100}}, out.Exercises[0].Sets)
}

func TestProfileConverters(t *testing.T) {
	p := profile.Default("u1")
	p.Name = "Sam"
	p.WeightUnit = profile.WeightUnitLbs

	m := ProfileToFirestore(&p)
	assert.Equal(t, "Sam", m["displayName"])
	assert.Equal(t, "lbs", m["preferredWeightUnit"])
	assert.NotContains(t, m, "email")

	m["weeklyWorkoutsTarget"] = int64(4)
	m["weeklyMealsTarget"] = int64(10)
	m["weightKg"] = int64(70)
	m["heightCm"] = float64(170)
	m["email"] = "sam@example.com"
	out := FirestoreToProfile("u1", m)

	assert.Equal(t, "u1", out.UserID)
	assert.Equal(t, "sam@example.com", out.Email)
	assert.Equal(t, 4, out.WeeklyWorkoutsTarget)
	assert.Equal(t, 70.0, out.WeightKg)
	assert.Equal(t, 170.0, out.HeightCm)
	assert.Equal(t, "lbs", out.WeightUnit)
}

func TestOwnerID(t *testing.T) {
	assert.Equal(t, "", ownerID(nil))
	assert.Equal(t, "", ownerID(&firestore.DocumentRef{ID: "2024-05-08"}))
}
