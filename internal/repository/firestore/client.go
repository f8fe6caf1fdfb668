// Package firestore stores users, daily logs and workouts in Cloud Firestore
// using the same document layout as the mobile client:
//
//	users/{uid}
//	users/{uid}/logs/{yyyy-mm-dd}
//	users/{uid}/workouts/{id}
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"fittrack-go/internal/domain/dailylog"
	"fittrack-go/internal/domain/profile"
	"fittrack-go/internal/domain/workout"
)

const (
	usersCollection    = "users"
	logsCollection     = "logs"
	workoutsCollection = "workouts"
)

var (
	firestoreServerTime interface{} = firestore.ServerTimestamp
	deleteField         interface{} = firestore.Delete
)

type Client struct {
	fs *firestore.Client
}

func NewClient(ctx context.Context, projectID string) (*Client, error) {
	fs, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &Client{fs: fs}, nil
}

func (c *Client) Close() error {
	return c.fs.Close()
}

func (c *Client) Users() *Collection[profile.Profile] {
	return &Collection[profile.Profile]{
		Ref:           c.fs.Collection(usersCollection),
		ToFirestore:   ProfileToFirestore,
		FromFirestore: FirestoreToProfile,
	}
}

// UserLogs are sub-collections of Users: users/{uid}/logs/{date}
func (c *Client) UserLogs(userID string) *Collection[dailylog.DailyLog] {
	return &Collection[dailylog.DailyLog]{
		Ref:           c.fs.Collection(usersCollection).Doc(userID).Collection(logsCollection),
		ToFirestore:   DailyLogToFirestore,
		FromFirestore: FirestoreToDailyLog(userID),
	}
}

// UserWorkouts are sub-collections of Users: users/{uid}/workouts/{id}
func (c *Client) UserWorkouts(userID string) *Collection[workout.Workout] {
	return &Collection[workout.Workout]{
		Ref:           c.fs.Collection(usersCollection).Doc(userID).Collection(workoutsCollection),
		ToFirestore:   WorkoutToFirestore,
		FromFirestore: FirestoreToWorkout(userID),
	}
}

func (c *Client) DailyLogs() *DailyLogRepository {
	return &DailyLogRepository{client: c}
}

func (c *Client) Workouts() *WorkoutRepository {
	return &WorkoutRepository{client: c}
}

func (c *Client) Profiles() *ProfileRepository {
	return &ProfileRepository{client: c}
}
