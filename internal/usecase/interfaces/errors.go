package interfaces

import "errors"

// Adapter-level sentinels shared by every persistence implementation.
var (
	// ErrNotFound is returned by catalog and ledger lookups for unknown ids.
	ErrNotFound = errors.New("not found")
	// ErrConditionFailed is returned when a conditional write lost against a concurrent change.
	ErrConditionFailed = errors.New("conditional write failed")
	// ErrLockNotAcquired is returned by lockers that do not wait for a held key.
	ErrLockNotAcquired = errors.New("lock not acquired")
)
