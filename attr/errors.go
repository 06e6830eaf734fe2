package attr

import "errors"

var (
	// ErrRejected marks a value a processor refused. Normalize drops such
	// keys; it never surfaces this error to callers of Apply.
	ErrRejected = errors.New("attr: value rejected")

	// ErrUnknownUpdater is returned by NewSchema when a trigger names an
	// updater that no definition declares.
	ErrUnknownUpdater = errors.New("attr: trigger references unknown updater")

	// ErrCascadeLimit is returned when updaters keep re-applying changes
	// past MaxDepth nested calls or MaxUpdaterCalls invocations.
	ErrCascadeLimit = errors.New("attr: updater cascade limit exceeded")
)
