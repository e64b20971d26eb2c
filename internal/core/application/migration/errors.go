package migration

import "errors"

var (
	// ErrMissingRecipientPath ...
	ErrMissingRecipientPath = errors.New("recipient derivation path must not be empty")
)

// BroadcastError is returned when the network rejects a signed transaction.
// Its message is the rejection reason reported by the network.
type BroadcastError struct {
	UUID   string
	Reason string
}

func (e *BroadcastError) Error() string {
	return e.Reason
}
