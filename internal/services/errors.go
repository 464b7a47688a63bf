package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/validation"
)

var (
	ErrNotFound  = errors.New("buyer not found")
	ErrForbidden = errors.New("you are not allowed to modify this buyer lead")
)

// ValidationError carries every field-level issue so handlers can surface
// them per-field instead of a single opaque message.
type ValidationError struct {
	Issues []validation.Issue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d issue(s)", len(e.Issues))
}

// ConflictError is the optimistic-concurrency rejection. Both timestamps
// are included so the client can explain the staleness and re-read.
type ConflictError struct {
	ClientUpdatedAt time.Time
	ServerUpdatedAt time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("stale record: client updatedAt %s, server updatedAt %s",
		e.ClientUpdatedAt.Format(time.RFC3339Nano), e.ServerUpdatedAt.Format(time.RFC3339Nano))
}

// BatchTooLargeError rejects an import before any row is validated.
type BatchTooLargeError struct {
	Rows    int
	MaxRows int
}

func (e *BatchTooLargeError) Error() string {
	return fmt.Sprintf("import of %d rows exceeds the %d row limit", e.Rows, e.MaxRows)
}
