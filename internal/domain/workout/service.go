package workout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fittrack-go/internal/domain/dailylog"
)

type Service struct {
	repo     Repository
	drafts   DraftStore
	notifier Notifier
	now      func() time.Time

	// Draft edits for one user are serialized so concurrent requests
	// cannot overwrite each other.
	draftLocksMu sync.Mutex
	draftLocks   map[string]*sync.Mutex
}

func NewService(repo Repository, drafts DraftStore, notifier Notifier) *Service {
	return &Service{
		repo:       repo,
		drafts:     drafts,
		notifier:   notifier,
		now:        time.Now,
		draftLocks: make(map[string]*sync.Mutex),
	}
}

func (s *Service) lockDraft(userID string) func() {
	s.draftLocksMu.Lock()
	l, ok := s.draftLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.draftLocks[userID] = l
	}
	s.draftLocksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// Draft operations

func (s *Service) GetDraft(userID string) Session {
	draft, _ := s.drafts.Get(userID)
	return draft
}

func (s *Service) DiscardDraft(userID string) {
	defer s.lockDraft(userID)()
	s.drafts.Delete(userID)
}

func (s *Service) AddDraftExercise(userID, exerciseID string) (Session, error) {
	return s.editDraft(userID, func(draft *Session) error {
		return draft.AddExercise(strings.TrimSpace(exerciseID))
	})
}

func (s *Service) RemoveDraftExercise(userID string, exerciseIndex int) (Session, error) {
	return s.editDraft(userID, func(draft *Session) error {
		return draft.RemoveExercise(exerciseIndex)
	})
}

func (s *Service) AddDraftSet(userID string, exerciseIndex int) (Session, error) {
	return s.editDraft(userID, func(draft *Session) error {
		return draft.AddSet(exerciseIndex)
	})
}

func (s *Service) RemoveDraftSet(userID string, exerciseIndex, setIndex int) (Session, error) {
	return s.editDraft(userID, func(draft *Session) error {
		return draft.RemoveSet(exerciseIndex, setIndex)
	})
}

func (s *Service) UpdateDraftSet(input UpdateSetInput) (Session, error) {
	return s.editDraft(input.UserID, func(draft *Session) error {
		return draft.UpdateSet(input.ExerciseIndex, input.SetIndex, input.Field, input.Value)
	})
}

// editDraft applies fn to a copy of the stored draft and only stores the copy
// when fn succeeds, so a failed edit leaves the draft untouched.
func (s *Service) editDraft(userID string, fn func(*Session) error) (Session, error) {
	defer s.lockDraft(userID)()

	current, _ := s.drafts.Get(userID)
	draft := current.Clone()
	if err := fn(&draft); err != nil {
		return current, err
	}
	s.drafts.Put(userID, draft)
	return draft.Clone(), nil
}

// SaveDraft holds the user's draft lock until the draft is deleted, so an edit
// arriving meanwhile applies to the next draft instead of being lost.
func (s *Service) SaveDraft(ctx context.Context, input SaveDraftInput) (*Workout, error) {
	defer s.lockDraft(input.UserID)()

	draft, ok := s.drafts.Get(input.UserID)
	if !ok || draft.Empty() {
		return nil, ErrEmptyWorkout
	}

	workout, err := s.persist(ctx, input.UserID, input.Date, input.Notes, draft)
	if err != nil {
		return nil, err
	}

	s.drafts.Delete(input.UserID)
	return workout, nil
}

// Workout operations

// CreateWorkout saves a complete workout submitted in one request. The
// exercises are replayed through a Session so totals and set numbers are
// derived the same way as for drafts.
func (s *Service) CreateWorkout(ctx context.Context, input CreateWorkoutInput) (*Workout, error) {
	if len(input.Exercises) == 0 {
		return nil, ErrEmptyWorkout
	}

	var session Session
	for i, exInput := range input.Exercises {
		if len(exInput.Sets) == 0 {
			return nil, fmt.Errorf("%w: exercise %d has no sets", ErrInvalidWorkout, i)
		}
		if err := session.AddExercise(strings.TrimSpace(exInput.ExerciseID)); err != nil {
			return nil, err
		}
		for j := 1; j < len(exInput.Sets); j++ {
			if err := session.AddSet(i); err != nil {
				return nil, err
			}
		}
		for j, set := range exInput.Sets {
			if err := session.UpdateSet(i, j, SetFieldReps, float64(set.Reps)); err != nil {
				return nil, err
			}
			if err := session.UpdateSet(i, j, SetFieldWeight, set.WeightKg); err != nil {
				return nil, err
			}
		}
	}

	return s.persist(ctx, input.UserID, input.Date, input.Notes, session)
}

func (s *Service) persist(ctx context.Context, userID string, date time.Time, notes string, session Session) (*Workout, error) {
	if date.IsZero() {
		date = s.now()
	}

	workout := session.Finalize(userID, date, strings.TrimSpace(notes), s.now())
	if err := s.repo.CreateWorkout(ctx, &workout); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(userID)
	}
	return &workout, nil
}

func (s *Service) ListWorkouts(ctx context.Context, userID string, filter ListFilter) ([]Workout, int64, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, 0, ErrInvalidDateRange
	}
	return s.repo.ListWorkouts(ctx, userID, filter)
}

func (s *Service) ListWorkoutsForDate(ctx context.Context, userID string, date time.Time) ([]Workout, error) {
	return s.repo.ListWorkoutsForDate(ctx, userID, dailylog.Day(date))
}

func (s *Service) GetWorkout(ctx context.Context, userID, workoutID string) (*Workout, error) {
	return s.repo.GetWorkoutByID(ctx, userID, workoutID)
}

func (s *Service) DeleteWorkout(ctx context.Context, userID, workoutID string) error {
	deleted, err := s.repo.DeleteWorkout(ctx, userID, workoutID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrWorkoutNotFound
	}

	if s.notifier != nil {
		s.notifier.Notify(userID)
	}
	return nil
}
