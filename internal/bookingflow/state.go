// Package bookingflow drives a student through room booking: preference
// selection, room/plan choice, profile capture, payment, confirmation. It
// is pure state; persistence and money movement live in checkout.
package bookingflow

import (
	"fmt"
	"sort"
	"strings"
)

type State string

const (
	StateNoPreferences    State = "NoPreferences"
	StatePreferencesSet   State = "PreferencesSet"
	StateRoomSelected     State = "RoomSelected"
	StateProfileSubmitted State = "ProfileSubmitted"
	StatePaymentInitiated State = "PaymentInitiated"
	StateConfirmed        State = "Confirmed"
	StateAlreadyBooked    State = "AlreadyBooked"
	StatePaymentFailed    State = "PaymentFailed"
)

// FieldErrors maps field names to messages so callers can present all
// problems at once instead of one at a time.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// InvalidTransitionError reports an operation attempted from the wrong
// state.
type InvalidTransitionError struct {
	From State
	Op   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot %s from %s", e.Op, e.From)
}
