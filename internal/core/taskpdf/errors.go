package taskpdf

import "errors"

var (
	// ErrNoLines is returned when no line sequence was supplied at all.
	ErrNoLines = errors.New("taskpdf: nil line sequence")
	// ErrNotTaskSheet marks a document the classifier rejected. It is an expected outcome.
	ErrNotTaskSheet = errors.New("taskpdf: not a task sheet")
)
