package client

import (
	"alcyxob/workout-tracker/internal/domain"
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Workout is the client-side view of a record. Decoding is lenient: legacy
// "_id" keys, numeric durations and odd dates are all accepted.
type Workout struct {
	ID        string               `json:"id"`
	OwnerID   string               `json:"userId,omitempty"`
	Name      string               `json:"name"`
	Duration  string               `json:"duration"`
	Status    domain.WorkoutStatus `json:"status"`
	DateAdded Timestamp            `json:"dateAdded"`
}

func (w *Workout) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        looseString `json:"id"`
		LegacyID  looseString `json:"_id"`
		OwnerID   looseString `json:"userId"`
		Name      looseString `json:"name"`
		Duration  looseString `json:"duration"`
		Status    looseString `json:"status"`
		DateAdded Timestamp   `json:"dateAdded"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id := string(raw.ID)
	if id == "" {
		id = string(raw.LegacyID)
	}
	*w = Workout{
		ID:        id,
		OwnerID:   string(raw.OwnerID),
		Name:      string(raw.Name),
		Duration:  string(raw.Duration),
		Status:    domain.ParseWorkoutStatus(string(raw.Status)),
		DateAdded: raw.DateAdded,
	}
	return nil
}

// looseString accepts a JSON string, number, bool or null.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = looseString(data)
	default:
		if _, err := strconv.ParseFloat(string(data), 64); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*s = looseString(data)
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
	time.RFC1123,
	time.RFC1123Z,
}

// Timestamp is a dateAdded value that never fails to decode. Unparseable or
// absent values leave Valid false; Raw keeps the original text for display.
type Timestamp struct {
	Time  time.Time
	Valid bool
	Raw   string
}

// NewTimestamp wraps a known time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC(), Valid: true}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Raw = s
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.Time, t.Valid = parsed.UTC(), true
				return nil
			}
		}
		return nil
	}

	// Epoch milliseconds, as Date.now() produces.
	var ms float64
	if err := json.Unmarshal(data, &ms); err == nil {
		t.Time, t.Valid = time.UnixMilli(int64(ms)).UTC(), true
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	switch {
	case t.Valid:
		return json.Marshal(t.Time.Format(time.RFC3339Nano))
	case t.Raw != "":
		return json.Marshal(t.Raw)
	default:
		return []byte("null"), nil
	}
}

// sortKey is the instant used for ordering; missing dates count as the epoch.
func (t Timestamp) sortKey() time.Time {
	if !t.Valid {
		return time.Unix(0, 0).UTC()
	}
	return t.Time
}

func (t Timestamp) String() string {
	switch {
	case t.Valid:
		return t.Time.Local().Format("January 2, 2006 03:04 PM")
	case t.Raw != "":
		return t.Raw
	default:
		return "N/A"
	}
}

// NewWorkout is the body of a create call. Status may be left empty.
type NewWorkout struct {
	Name     string               `json:"name"`
	Duration string               `json:"duration"`
	Status   domain.WorkoutStatus `json:"status,omitempty"`
}

// WorkoutChanges is a partial update; nil fields are not sent.
type WorkoutChanges struct {
	Name     *string               `json:"name,omitempty"`
	Duration *string               `json:"duration,omitempty"`
	Status   *domain.WorkoutStatus `json:"status,omitempty"`
}
