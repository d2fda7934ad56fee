package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRequestNotFound   = errors.New("booking request not found")
	ErrOutOfWindow       = errors.New("time outside operating window")
	ErrIndexOutOfRange   = errors.New("slot index out of range")
	ErrInvalidRange      = errors.New("invalid slot range")
	ErrConflict          = errors.New("slot range conflicts with a live request")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ConflictError names the live request that blocks admission. It matches
// ErrConflict under errors.Is.
type ConflictError struct {
	WithRequestID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot range conflicts with request %s", e.WithRequestID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
