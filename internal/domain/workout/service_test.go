package workout

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"
)

type fakeWorkoutRepo struct {
	workouts map[string]*Workout
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[string]*Workout)}
}

func (r *fakeWorkoutRepo) ListWorkouts(ctx context.Context, userID string, filter ListFilter) ([]Workout, int64, error) {
	items := make([]Workout, 0)
	for _, w := range r.workouts {
		if w.UserID != userID {
			continue
		}
		if filter.From != nil && w.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && w.Date.After(*filter.To) {
			continue
		}
		items = append(items, *w)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, int64(len(items)), nil
}

func (r *fakeWorkoutRepo) ListWorkoutsForDate(ctx context.Context, userID string, date time.Time) ([]Workout, error) {
	items, _, err := r.ListWorkouts(ctx, userID, ListFilter{From: &date, To: &date})
	return items, err
}

func (r *fakeWorkoutRepo) GetWorkoutByID(ctx context.Context, userID, workoutID string) (*Workout, error) {
	w, ok := r.workouts[workoutID]
	if !ok || w.UserID != userID {
		return nil, ErrWorkoutNotFound
	}
	return w, nil
}

func (r *fakeWorkoutRepo) CreateWorkout(ctx context.Context, workout *Workout) error {
	r.workouts[workout.ID] = workout
	return nil
}

func (r *fakeWorkoutRepo) DeleteWorkout(ctx context.Context, userID, workoutID string) (bool, error) {
	w, ok := r.workouts[workoutID]
	if !ok || w.UserID != userID {
		return false, nil
	}
	delete(r.workouts, workoutID)
	return true, nil
}

type fakeDrafts struct {
	items map[string]Session
}

func (d *fakeDrafts) Get(userID string) (Session, bool) {
	s, ok := d.items[userID]
	return s.Clone(), ok
}

func (d *fakeDrafts) Put(userID string, session Session) {
	d.items[userID] = session.Clone()
}

func (d *fakeDrafts) Delete(userID string) {
	delete(d.items, userID)
}

type recordingNotifier struct {
	users []string
}

func (n *recordingNotifier) Notify(userID string) {
	n.users = append(n.users, userID)
}

func newTestService() (*Service, *fakeWorkoutRepo, *recordingNotifier) {
	repo := newFakeWorkoutRepo()
	notifier := &recordingNotifier{}
	service := NewService(repo, &fakeDrafts{items: make(map[string]Session)}, notifier)
	service.now = func() time.Time {
		return time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)
	}
	return service, repo, notifier
}

func TestDraftLifecycle(t *testing.T) {
	service, repo, notifier := newTestService()
	ctx := context.Background()

	if _, err := service.AddDraftExercise("u1", "bench-press"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := service.AddDraftSet("u1", 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	draft, err := service.UpdateDraftSet(UpdateSetInput{UserID: "u1", ExerciseIndex: 0, SetIndex: 1, Field: SetFieldWeight, Value: 80})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := draft.Exercises[0].Sets[1].WeightKg; got != 80 {
		t.Fatalf("expected weight 80, got %v", got)
	}

	saved, err := service.SaveDraft(ctx, SaveDraftInput{
		UserID: "u1",
		Date:   time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		Notes:  "  heavy  ",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if saved.ID != "2024-05-06-1714996800000" {
		t.Fatalf("unexpected id %q", saved.ID)
	}
	if saved.Notes != "heavy" {
		t.Fatalf("expected trimmed notes, got %q", saved.Notes)
	}
	if saved.TotalCalories != saved.Exercises[0].CaloriesBurned {
		t.Fatalf("expected total %d, got %d", saved.Exercises[0].CaloriesBurned, saved.TotalCalories)
	}
	if _, ok := repo.workouts[saved.ID]; !ok {
		t.Fatalf("expected workout persisted")
	}
	if len(notifier.users) != 1 || notifier.users[0] != "u1" {
		t.Fatalf("expected one notification for u1, got %v", notifier.users)
	}
	if got := service.GetDraft("u1"); !got.Empty() {
		t.Fatalf("expected draft cleared after save")
	}
}

func TestSaveEmptyDraft(t *testing.T) {
	service, repo, notifier := newTestService()

	_, err := service.SaveDraft(context.Background(), SaveDraftInput{UserID: "u1"})
	if !errors.Is(err, ErrEmptyWorkout) {
		t.Fatalf("expected ErrEmptyWorkout, got %v", err)
	}
	if len(repo.workouts) != 0 || len(notifier.users) != 0 {
		t.Fatalf("expected nothing persisted or notified")
	}
}

func TestFailedDraftEditKeepsDraft(t *testing.T) {
	service, _, _ := newTestService()

	if _, err := service.AddDraftExercise("u1", "squat"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	draft, err := service.RemoveDraftSet("u1", 0, 0)
	if !errors.Is(err, ErrLastSet) {
		t.Fatalf("expected ErrLastSet, got %v", err)
	}
	if len(draft.Exercises) != 1 || len(draft.Exercises[0].Sets) != 1 {
		t.Fatalf("expected draft unchanged, got %+v", draft)
	}

	if _, err := service.AddDraftExercise("u1", "missing"); !errors.Is(err, ErrExerciseNotFound) {
		t.Fatalf("expected ErrExerciseNotFound, got %v", err)
	}
	if got := service.GetDraft("u1"); len(got.Exercises) != 1 {
		t.Fatalf("expected one exercise, got %d", len(got.Exercises))
	}

	service.DiscardDraft("u1")
	if got := service.GetDraft("u1"); !got.Empty() {
		t.Fatalf("expected draft discarded")
	}
}

func TestCreateWorkoutDerivesTotals(t *testing.T) {
	service, _, _ := newTestService()

	workout, err := service.CreateWorkout(context.Background(), CreateWorkoutInput{
		UserID: "u1",
		Date:   time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC),
		Exercises: []ExerciseInput{
			{ExerciseID: "bench-press", Sets: []SetInput{{Reps: 10}, {Reps: 10}, {Reps: 10}}},
			{ExerciseID: "squat", Sets: []SetInput{{Reps: 5, WeightKg: 100}}},
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := len(workout.Exercises[0].Sets); got != 3 {
		t.Fatalf("expected 3 sets, got %d", got)
	}
	for i, set := range workout.Exercises[0].Sets {
		if set.Number != i+1 {
			t.Fatalf("expected set number %d, got %d", i+1, set.Number)
		}
	}
	if workout.Exercises[0].CaloriesBurned != 33 {
		t.Fatalf("expected 33 calories, got %d", workout.Exercises[0].CaloriesBurned)
	}
	want := workout.Exercises[0].CaloriesBurned + workout.Exercises[1].CaloriesBurned
	if workout.TotalCalories != want {
		t.Fatalf("expected total %d, got %d", want, workout.TotalCalories)
	}
	if workout.DurationMinutes != 10 {
		t.Fatalf("expected 10 minutes, got %d", workout.DurationMinutes)
	}
}

func TestCreateWorkoutRejectsInvalidInput(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateWorkoutInput
		want  error
	}{
		{name: "empty", input: CreateWorkoutInput{UserID: "u1"}, want: ErrEmptyWorkout},
		{name: "no sets", input: CreateWorkoutInput{UserID: "u1", Exercises: []ExerciseInput{{ExerciseID: "squat"}}}, want: ErrInvalidWorkout},
		{name: "unknown exercise", input: CreateWorkoutInput{UserID: "u1", Exercises: []ExerciseInput{{ExerciseID: "x", Sets: []SetInput{{Reps: 1}}}}}, want: ErrExerciseNotFound},
		{name: "negative weight", input: CreateWorkoutInput{UserID: "u1", Exercises: []ExerciseInput{{ExerciseID: "squat", Sets: []SetInput{{Reps: 1, WeightKg: -5}}}}}, want: ErrInvalidSetValue},
	}

	for _, tc := range cases {
		if _, err := service.CreateWorkout(ctx, tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if len(repo.workouts) != 0 {
		t.Fatalf("expected nothing persisted, got %d", len(repo.workouts))
	}
}

func TestDeleteWorkout(t *testing.T) {
	service, repo, notifier := newTestService()
	ctx := context.Background()
	repo.workouts["w1"] = &Workout{ID: "w1", UserID: "u1"}

	if err := service.DeleteWorkout(ctx, "u2", "w1"); !errors.Is(err, ErrWorkoutNotFound) {
		t.Fatalf("expected ErrWorkoutNotFound, got %v", err)
	}
	if err := service.DeleteWorkout(ctx, "u1", "w1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(notifier.users) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.users))
	}
}

func TestListWorkoutsRejectsInvertedRange(t *testing.T) {
	service, _, _ := newTestService()
	from := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	_, _, err := service.ListWorkouts(context.Background(), "u1", ListFilter{From: &from, To: &to})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestListWorkoutsForDate(t *testing.T) {
	service, repo, _ := newTestService()
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	repo.workouts["a"] = &Workout{ID: "a", UserID: "u1", Date: day}
	repo.workouts["b"] = &Workout{ID: "b", UserID: "u1", Date: day.AddDate(0, 0, -1)}

	items, err := service.ListWorkoutsForDate(context.Background(), "u1", day.Add(15*time.Hour))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 1 || items[0].ID != "a" {
		t.Fatalf("expected only workout a, got %+v", items)
	}
}

type slowDrafts struct {
	*fakeDrafts
}

func (d slowDrafts) Get(userID string) (Session, bool) {
	time.Sleep(time.Millisecond)
	return d.fakeDrafts.Get(userID)
}

type blockingWorkoutRepo struct {
	*fakeWorkoutRepo
	started chan struct{}
	release chan struct{}
}

func (r *blockingWorkoutRepo) CreateWorkout(ctx context.Context, workout *Workout) error {
	close(r.started)
	<-r.release
	return r.fakeWorkoutRepo.CreateWorkout(ctx, workout)
}

func TestConcurrentDraftEditsAreNotLost(t *testing.T) {
	service := NewService(newFakeWorkoutRepo(), slowDrafts{&fakeDrafts{items: make(map[string]Session)}}, nil)
	if _, err := service.AddDraftExercise("u1", "squat"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	const editors = 8
	var wg sync.WaitGroup
	errs := make(chan error, editors)
	for i := 0; i < editors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.AddDraftSet("u1", 0)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	draft := service.GetDraft("u1")
	if got := len(draft.Exercises[0].Sets); got != editors+1 {
		t.Fatalf("expected %d sets, got %d", editors+1, got)
	}
	for i, set := range draft.Exercises[0].Sets {
		if set.Number != i+1 {
			t.Fatalf("expected set %d to be numbered %d, got %d", i, i+1, set.Number)
		}
	}
}

func TestDraftEditWaitsForSave(t *testing.T) {
	repo := &blockingWorkoutRepo{
		fakeWorkoutRepo: newFakeWorkoutRepo(),
		started:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	service := NewService(repo, &fakeDrafts{items: make(map[string]Session)}, nil)
	if _, err := service.AddDraftExercise("u1", "squat"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	saved := make(chan *Workout, 1)
	go func() {
		w, err := service.SaveDraft(context.Background(), SaveDraftInput{UserID: "u1"})
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		saved <- w
	}()
	<-repo.started

	edited := make(chan error, 1)
	go func() {
		_, err := service.AddDraftSet("u1", 0)
		edited <- err
	}()

	select {
	case err := <-edited:
		t.Fatalf("expected edit to wait for save, got %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	close(repo.release)
	w := <-saved
	if w == nil || len(w.Exercises[0].Sets) != 1 {
		t.Fatalf("expected saved workout with one set, got %+v", w)
	}
	if err := <-edited; !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected edit on the emptied draft to fail with ErrIndexOutOfRange, got %v", err)
	}
}

func TestCreateWorkoutRejectsRepsAboveBound(t *testing.T) {
	service, repo, _ := newTestService()
	_, err := service.CreateWorkout(context.Background(), CreateWorkoutInput{
		UserID: "u1",
		Exercises: []ExerciseInput{{
			ExerciseID: "squat",
			Sets:       []SetInput{{Reps: MaxReps + 1}},
		}},
	})
	if !errors.Is(err, ErrInvalidSetValue) {
		t.Fatalf("expected ErrInvalidSetValue, got %v", err)
	}
	if len(repo.workouts) != 0 {
		t.Fatalf("expected nothing stored, got %d workouts", len(repo.workouts))
	}
}

func TestListWorkoutsForDateUsesCalendarDay(t *testing.T) {
	service, repo, _ := newTestService()
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	repo.workouts["a"] = &Workout{ID: "a", UserID: "u1", Date: day}

	// 03:00 on May 6 in UTC+10 is still May 5 in UTC.
	local := time.Date(2024, 5, 6, 3, 0, 0, 0, time.FixedZone("AEST", 10*60*60))
	items, err := service.ListWorkoutsForDate(context.Background(), "u1", local)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 1 || items[0].ID != "a" {
		t.Fatalf("expected workout a, got %+v", items)
	}
}
