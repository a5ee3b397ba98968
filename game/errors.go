package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHexagramSpec reports malformed line or trigram data. Once the
	// catalog passes its completeness check at init this never happens at
	// runtime.
	ErrInvalidHexagramSpec = errors.New("invalid hexagram spec")

	// ErrActionRejected reports a legality failure. The action did not
	// mutate state and did not consume the player's turn.
	ErrActionRejected = errors.New("action rejected")

	// ErrMatchAlreadyOver reports an action submitted after termination.
	ErrMatchAlreadyOver = errors.New("match already over")
)

// Rejectf wraps ErrActionRejected with a reason for the caller.
func Rejectf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrActionRejected}, args...)...)
}
