package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an ID does not match any row.
var ErrNotFound = errors.New("record not found")

// ValidationError wraps a user-facing validation message. It is shown
// inline by the dashboard; no mutation has been attempted when it occurs.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// MalformedRowError reports a worksheet row that could not be decoded
// into a typed record (bad date, unknown status, missing columns).
type MalformedRowError struct {
	Sheet string
	Row   int
	Err   error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row %d in sheet %s: %v", e.Row, e.Sheet, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }
