package pipeline

import "errors"

// Sentinel kinds for pipeline errors.
var (
	ErrMissingDependency = errors.New("missing pipeline dependency")
	ErrMissingStudentID  = errors.New("event has no student id")
)
