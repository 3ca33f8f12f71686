package client

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"alcyxob/workout-tracker/internal/domain"
)

// View holds the signed-in user's workouts in display order and reconciles
// them with the store after every operation. Safe for concurrent use.
type View struct {
	api API

	mu         sync.Mutex
	session    *Session
	generation uint64
	workouts   []Workout
	message    string
}

func NewView(api API) *View {
	return &View{api: api, workouts: []Workout{}}
}

// SignIn starts a new session for token and loads its workouts. The session
// stays active even if the initial load fails.
func (v *View) SignIn(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrUnauthenticated
	}
	owner, _ := OwnerFromToken(token)

	v.mu.Lock()
	v.generation++
	v.session = &Session{Token: token, OwnerID: owner, Generation: v.generation}
	v.workouts = []Workout{}
	v.message = ""
	v.mu.Unlock()

	return v.Refresh(ctx)
}

// SignOut ends the session. The list and message are cleared before it
// returns; anything still in flight is dropped when it lands.
func (v *View) SignOut() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.generation++
	v.session = nil
	v.workouts = []Workout{}
	v.message = ""
}

// Session returns a copy of the active session, or nil.
func (v *View) Session() *Session {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.session == nil {
		return nil
	}
	s := *v.session
	return &s
}

// Workouts returns a copy of the list in display order.
func (v *View) Workouts() []Workout {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.workouts)
}

// Message is the last user-facing status line.
func (v *View) Message() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.message
}

// begin captures the session an operation runs under.
func (v *View) begin() (Session, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.session == nil {
		v.message = messageFor(opAuth, ErrUnauthenticated)
		return Session{}, ErrUnauthenticated
	}
	return *v.session, nil
}

// apply runs fn under the lock if gen is still current.
func (v *View) apply(gen uint64, fn func()) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		return ErrSessionSuperseded
	}
	fn()
	return nil
}

func (v *View) current(gen uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return gen == v.generation
}

// fail records the message for err, unless the session moved on.
func (v *View) fail(gen uint64, op operation, err error) error {
	if applyErr := v.apply(gen, func() { v.message = messageFor(op, err) }); applyErr != nil {
		return applyErr
	}
	return err
}

// Refresh replaces the list with the store's current contents.
func (v *View) Refresh(ctx context.Context) error {
	s, err := v.begin()
	if err != nil {
		return err
	}
	return v.refresh(ctx, s, "")
}

func (v *View) refresh(ctx context.Context, s Session, success string) error {
	// A mutation can outlive its session; never list with a token the view
	// no longer holds.
	if !v.current(s.Generation) {
		return ErrSessionSuperseded
	}
	workouts, err := v.api.ListWorkouts(ctx, s.Token)
	if err != nil {
		return v.fail(s.Generation, opList, err)
	}
	ordered := OrderForDisplay(workouts)
	return v.apply(s.Generation, func() {
		v.workouts = ordered
		v.message = success
	})
}

// Create validates the input, adds the workout and reloads the list.
func (v *View) Create(ctx context.Context, in NewWorkout) error {
	s, err := v.begin()
	if err != nil {
		return err
	}
	if err := ValidateNewWorkout(in); err != nil {
		return v.fail(s.Generation, opCreate, err)
	}
	if _, err := v.api.CreateWorkout(ctx, s.Token, in); err != nil {
		return v.fail(s.Generation, opCreate, err)
	}
	return v.refresh(ctx, s, "Workout added.")
}

// Update applies changes and reloads the list.
func (v *View) Update(ctx context.Context, id string, changes WorkoutChanges) error {
	s, err := v.begin()
	if err != nil {
		return err
	}
	if _, err := v.api.UpdateWorkout(ctx, s.Token, id, changes); err != nil {
		return v.fail(s.Generation, opUpdate, err)
	}
	return v.refresh(ctx, s, "Workout updated.")
}

// UpdateOptimistic applies changes and merges the returned record into the
// local list by id, skipping the reload. When the reply carries no record it
// falls back to a reload.
func (v *View) UpdateOptimistic(ctx context.Context, id string, changes WorkoutChanges) error {
	s, err := v.begin()
	if err != nil {
		return err
	}
	updated, err := v.api.UpdateWorkout(ctx, s.Token, id, changes)
	if err != nil {
		return v.fail(s.Generation, opUpdate, err)
	}
	if updated == nil {
		return v.refresh(ctx, s, "Workout updated.")
	}
	return v.apply(s.Generation, func() {
		v.workouts = OrderForDisplay(replaceByID(v.workouts, id, *updated))
		v.message = "Workout updated."
	})
}

// Delete removes the workout from the store and the local list.
func (v *View) Delete(ctx context.Context, id string) error {
	s, err := v.begin()
	if err != nil {
		return err
	}
	if err := v.api.DeleteWorkout(ctx, s.Token, id); err != nil {
		return v.fail(s.Generation, opDelete, err)
	}
	return v.apply(s.Generation, func() {
		v.workouts = slices.DeleteFunc(v.workouts, func(w Workout) bool { return w.ID == id })
		v.message = "Workout deleted."
	})
}

// Complete marks the workout Completed in the store and locally.
func (v *View) Complete(ctx context.Context, id string) error {
	s, err := v.begin()
	if err != nil {
		return err
	}
	updated, err := v.api.CompleteWorkout(ctx, s.Token, id)
	if err != nil {
		return v.fail(s.Generation, opComplete, err)
	}
	return v.apply(s.Generation, func() {
		if updated != nil {
			v.workouts = OrderForDisplay(replaceByID(v.workouts, id, *updated))
		} else if i := slices.IndexFunc(v.workouts, func(w Workout) bool { return w.ID == id }); i >= 0 {
			v.workouts[i].Status = domain.WorkoutCompleted
		}
		v.message = "Workout marked as completed."
	})
}

// replaceByID swaps in w for the record with id, or appends it.
func replaceByID(workouts []Workout, id string, w Workout) []Workout {
	if w.ID == "" {
		w.ID = id
	}
	out := slices.Clone(workouts)
	if i := slices.IndexFunc(out, func(x Workout) bool { return x.ID == id }); i >= 0 {
		out[i] = w
		return out
	}
	return append(out, w)
}

type operation int

const (
	opAuth operation = iota
	opList
	opCreate
	opUpdate
	opDelete
	opComplete
)

func messageFor(op operation, err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "Please log in first."
	case errors.Is(err, ErrNormalization):
		return "Unexpected data format from API."
	case errors.Is(err, ErrValidation):
		return "Please fill in both name and duration."
	case errors.Is(err, ErrInvalidIdentifier):
		return "That workout id is not valid."
	case errors.Is(err, ErrNotFoundOrForbidden):
		return "Workout not found or you are not authorized to change it."
	case errors.Is(err, ErrNetwork):
		return "Network error or API is unreachable."
	}
	switch op {
	case opList:
		return "Failed to fetch workouts."
	case opCreate:
		return "Failed to add workout."
	case opUpdate:
		return "Failed to update workout."
	case opDelete:
		return "Failed to delete workout."
	case opComplete:
		return "Failed to mark workout as completed."
	default:
		return "Something went wrong."
	}
}
