package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrMalformedRequest = fmt.Errorf("malformed request")
	ErrIdentityMismatch = fmt.Errorf("event identity does not match connection identity")
	ErrInvalidToken     = fmt.Errorf("invalid or expired token")
	ErrEmptyWords       = fmt.Errorf("no words have been found")
	ErrUnknownEvent     = fmt.Errorf("unknown event name")
)
