package service

import "errors"

// Not-found errors double as authorization failures: a resource owned by
// someone else is reported as missing, never as forbidden.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrPhaseNotFound   = errors.New("phase not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrNoteNotFound    = errors.New("note not found")
)
