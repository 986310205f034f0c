package giveaway

import "errors"

var (
	// ErrInvalidParameters is returned by Create when duration, winner
	// count or prize fail validation.
	ErrInvalidParameters = errors.New("invalid giveaway parameters")

	// ErrNotFound is returned when the giveaway id has no record.
	ErrNotFound = errors.New("giveaway not found")

	// ErrAnnouncementNotFound is reported by the Presenter when the
	// announcement message was deleted externally. The engine tolerates it.
	ErrAnnouncementNotFound = errors.New("announcement message not found")
)
