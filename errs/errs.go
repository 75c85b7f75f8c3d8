package errs

import (
	"errors"
)

var (
	// ErrNetwork indicates the remote video API could not be reached at all.
	ErrNetwork = errors.New("network error")
	// ErrQuotaExceeded indicates a storage backend refused a write because it is full.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrStorageUnavailable wraps every failure of a storage backend to serve a
	// read or write (unreachable, closed, rejected), as well as failed startup pings.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
