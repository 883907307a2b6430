package domain

import "errors"

var (
	ErrOrderNotFound = errors.New("order_not_found")

	// ErrConflict means the target moved under the caller: room occupied,
	// plan removed, invoice already settled by another path.
	ErrConflict = errors.New("conflict")

	ErrAlreadyBooked = errors.New("already_booked")

	// ErrVerificationFailed is a signature mismatch. Fatal for the order
	// and logged as a potential security event.
	ErrVerificationFailed = errors.New("verification_failed")

	// ErrReconciliationRequired means the signature was valid (money moved)
	// but the confirmation could not be recorded.
	ErrReconciliationRequired = errors.New("reconciliation_required")

	ErrOrderExpired = errors.New("order_expired")

	// ErrOrderUnclaimable is a valid signature arriving for an order that
	// already failed. Like expiry, the capture is flagged for follow-up.
	ErrOrderUnclaimable = errors.New("order_unclaimable")

	ErrRateLimited    = errors.New("rate_limited")
	ErrUnknownSubject = errors.New("unknown_subject")
)
