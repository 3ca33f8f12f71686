// internal/domain/workout.go
package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutStatus tracks where a workout is in its lifecycle.
type WorkoutStatus string

const (
	WorkoutPending   WorkoutStatus = "Pending"
	WorkoutCompleted WorkoutStatus = "Completed"
	WorkoutCancelled WorkoutStatus = "Cancelled"
)

// DefaultWorkoutStatus is applied on create when the caller omits a status.
const DefaultWorkoutStatus = WorkoutPending

// ParseWorkoutStatus maps case variants ("pending", "COMPLETED") onto the
// canonical values. Anything else is returned verbatim.
func ParseWorkoutStatus(s string) WorkoutStatus {
	trimmed := strings.TrimSpace(s)
	for _, known := range []WorkoutStatus{WorkoutPending, WorkoutCompleted, WorkoutCancelled} {
		if strings.EqualFold(trimmed, string(known)) {
			return known
		}
	}
	return WorkoutStatus(trimmed)
}

// Workout is a single workout record owned by one user.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"` // Owner; every lookup filters on it
	Name      string             `bson:"name" json:"name"`
	Duration  string             `bson:"duration" json:"duration"` // Free text, e.g. "30 mins"
	Status    WorkoutStatus      `bson:"status" json:"status"`
	DateAdded time.Time          `bson:"dateAdded" json:"dateAdded"` // Sort key, never changed after create
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutUpdate carries the fields a partial update may overwrite.
// Nil means "leave as is".
type WorkoutUpdate struct {
	Name     *string
	Duration *string
	Status   *WorkoutStatus
}

// IsEmpty reports whether the update would change nothing.
func (u WorkoutUpdate) IsEmpty() bool {
	return u.Name == nil && u.Duration == nil && u.Status == nil
}
