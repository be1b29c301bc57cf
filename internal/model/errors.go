package model

import "errors"

var (
	// Order related errors
	ErrOrderNotFound = errors.New("order not found")
	ErrNoIDsProvided = errors.New("no ids provided")

	// Trash related errors
	ErrTrashItemNotFound = errors.New("trash item not found")

	// Scan related errors
	ErrScanBlocked = errors.New("manual scan blocked while auto-scan is running")

	// Export related errors
	ErrInvalidExportFormat = errors.New("invalid export format")
	ErrUnknownExportField  = errors.New("unknown export field")

	// Backend related errors
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendRejected    = errors.New("backend rejected the request")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
