package client

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Shape identifies which of the known list layouts a response used.
// The service has shipped all three at different times.
type Shape int

const (
	ShapeUnrecognized    Shape = iota
	ShapeArray                 // [...]
	ShapeWrappedWorkouts       // {"workouts": [...]}
	ShapeWrappedData           // {"data": [...]}
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeWrappedWorkouts:
		return "wrapped-workouts"
	case ShapeWrappedData:
		return "wrapped-data"
	default:
		return "unrecognized"
	}
}

// ListResponse is a decoded list body tagged with the layout it came in.
type ListResponse struct {
	Shape    Shape
	Workouts []Workout
}

// ClassifyListResponse decodes raw and classifies it in one step. Precedence:
// bare array, then "workouts", then "data". A body that is not JSON fails
// with a NormalizationError; valid JSON of any other layout is returned as
// ShapeUnrecognized.
func ClassifyListResponse(raw []byte) (ListResponse, error) {
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return ListResponse{}, &NormalizationError{Reason: "malformed body"}
	}

	if isJSONArray(raw) {
		return decodeList(ShapeArray, raw)
	}

	if len(raw) > 0 && raw[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return ListResponse{}, &NormalizationError{Reason: "malformed body", Cause: err}
		}
		if inner, ok := fields["workouts"]; ok && isJSONArray(inner) {
			return decodeList(ShapeWrappedWorkouts, inner)
		}
		if inner, ok := fields["data"]; ok && isJSONArray(inner) {
			return decodeList(ShapeWrappedData, inner)
		}
	}
	return ListResponse{Shape: ShapeUnrecognized}, nil
}

// NormalizeListResponse reduces any known list layout to one sequence.
// An empty list is only ever returned for a body that really was empty.
func NormalizeListResponse(raw []byte) ([]Workout, error) {
	resp, err := ClassifyListResponse(raw)
	if err != nil {
		return nil, err
	}
	if resp.Shape == ShapeUnrecognized {
		return nil, &NormalizationError{Reason: "unexpected shape"}
	}
	return resp.Workouts, nil
}

func decodeList(shape Shape, raw json.RawMessage) (ListResponse, error) {
	workouts := []Workout{}
	if err := json.Unmarshal(raw, &workouts); err != nil {
		return ListResponse{}, &NormalizationError{Reason: "malformed record", Cause: err}
	}
	return ListResponse{Shape: shape, Workouts: workouts}, nil
}

func isJSONArray(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// decodeRecord pulls a single workout out of a mutation reply. Accepted
// layouts: {"updatedWorkout": {...}}, {"workout": {...}} and a bare record.
// ok is false when the body carries no record, which is not an error: some
// deployments reply with only a message or nothing at all.
func decodeRecord(raw []byte) (w *Workout, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}

	for _, key := range []string{"updatedWorkout", "workout"} {
		if inner, found := fields[key]; found {
			raw = inner
			break
		}
	}
	if inner := bytes.TrimSpace(raw); len(inner) == 0 || inner[0] != '{' {
		return nil, false
	}

	var record Workout
	if err := json.Unmarshal(raw, &record); err != nil || record.ID == "" {
		return nil, false
	}
	return &record, true
}

// OrderForDisplay returns a copy sorted newest first by DateAdded. The sort
// is stable; records without a usable date sort as the epoch.
func OrderForDisplay(workouts []Workout) []Workout {
	ordered := slices.Clone(workouts)
	if ordered == nil {
		ordered = []Workout{}
	}
	slices.SortStableFunc(ordered, func(a, b Workout) int {
		return b.DateAdded.sortKey().Compare(a.DateAdded.sortKey())
	})
	return ordered
}
