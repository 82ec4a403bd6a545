package contracts

import (
	"errors"
	"fmt"
)

// ErrConnection signals that every persistence backend was unreachable.
// Fatal to a pipeline run; must be surfaced to the operator.
var ErrConnection = errors.New("all persistence backends unreachable")

// ErrNoData signals an empty (but valid) query result.
// Informational: "no data yet", distinct from an error.
var ErrNoData = errors.New("no data available")

// InsufficientDataError reports that a stage has fewer observations than
// its minimum. A structured "not available" result, not a run-aborting
// failure; sibling stages keep going.
type InsufficientDataError struct {
	Stage  string
	Needed int
	Got    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data (need >=%d points, got %d)", e.Stage, e.Needed, e.Got)
}

// IsInsufficientData reports whether err is an InsufficientDataError
func IsInsufficientData(err error) bool {
	var target *InsufficientDataError
	return errors.As(err, &target)
}

// BatchResult aggregates per-row outcomes of a batch stage.
// Row-level failures are isolated and counted, never propagated.
type BatchResult struct {
	Written int `json:"written"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Add merges another result into this one
func (r *BatchResult) Add(other BatchResult) {
	r.Written += other.Written
	r.Skipped += other.Skipped
	r.Failed += other.Failed
}
