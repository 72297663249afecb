package executor

import "errors"

// Sentinel errors returned by the executor.
var (
	// Lifecycle errors
	ErrNotStarted     = errors.New("executor: not started")
	ErrAlreadyStarted = errors.New("executor: already started")
	ErrStopped        = errors.New("executor: stopped")

	// Scheduling errors
	ErrNilTask       = errors.New("executor: nil task")
	ErrNegativeDelay = errors.New("executor: negative delay")
	ErrInvalidPeriod = errors.New("executor: period must be at least one nanosecond")
)

// IsLifecycleError returns true if the error comes from calling the executor
// outside its started state.
func IsLifecycleError(err error) bool {
	return errors.Is(err, ErrNotStarted) ||
		errors.Is(err, ErrAlreadyStarted) ||
		errors.Is(err, ErrStopped)
}
