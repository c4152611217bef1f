package services

import "errors"

var (
	// ErrNotFound means the referenced card does not exist in the caller's
	// collection.
	ErrNotFound = errors.New("card not found")

	// ErrInvalidTransition means the card's lifecycle state does not permit
	// the requested operation (e.g. reverting a card that was never traded).
	ErrInvalidTransition = errors.New("invalid lifecycle transition")

	// ErrNoValidGivenCards means none of the given-card ids in a trade were
	// owned by the caller. A partially valid list proceeds with the valid
	// subset; an entirely invalid one fails with this error.
	ErrNoValidGivenCards = errors.New("no valid given cards")

	// ErrUserNotFound means the target user of an admin operation is unknown.
	ErrUserNotFound = errors.New("user not found")
)
