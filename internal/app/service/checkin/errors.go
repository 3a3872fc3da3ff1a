package checkin

import "errors"

var (
	// ErrCheckinNotAvailable is a business rejection, not a fault: the
	// user's today slot is locked or the unlock hour has not passed.
	ErrCheckinNotAvailable = errors.New("checkin not available yet")

	// ErrRecordNotFound means no check-in record exists for the user.
	ErrRecordNotFound = errors.New("checkin record not found")

	// ErrDuplicateCreate is returned by Insert when a record already
	// exists; callers absorb it and re-fetch.
	ErrDuplicateCreate = errors.New("checkin record already exists")
)
