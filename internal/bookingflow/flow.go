package bookingflow

import (
	"time"

	bookingdomain "github.com/Sabyy027/hostel-core/internal/booking/domain"
	catalogdomain "github.com/Sabyy027/hostel-core/internal/catalog/domain"
	"github.com/bwmarrin/snowflake"
)

// Flow is one student's progress through the booking steps. A Flow is not
// safe for concurrent use; the Manager serializes access per student.
type Flow struct {
	State       State
	Preferences catalogdomain.Preferences

	RoomID         snowflake.ID
	PlanID         snowflake.ID
	QuotedAmount   int64
	Resident       *bookingdomain.ResidentDetails
	GatewayOrderID string
	LastFailure    string
}

// New starts a flow. An existing active booking short-circuits everything:
// the flow begins terminal and the booking UI goes read-only.
func New(hasBooking bool) *Flow {
	if hasBooking {
		return &Flow{State: StateAlreadyBooked}
	}
	return &Flow{State: StateNoPreferences}
}

// SetPreferences records the student's filters. Re-setting preferences
// before payment is allowed and clears any room selection.
func (f *Flow) SetPreferences(prefs catalogdomain.Preferences) error {
	switch f.State {
	case StateNoPreferences, StatePreferencesSet, StateRoomSelected, StatePaymentFailed:
	default:
		return &InvalidTransitionError{From: f.State, Op: "set preferences"}
	}
	if errs := ValidatePreferences(prefs); errs != nil {
		return errs
	}

	f.Preferences = prefs
	f.RoomID = 0
	f.PlanID = 0
	f.QuotedAmount = 0
	f.State = StatePreferencesSet
	return nil
}

// SelectRoom chooses a room and one of its plans from the listed catalog.
// Rooms without plans are visible in the catalog but cannot be selected.
func (f *Flow) SelectRoom(view catalogdomain.RoomView, planID snowflake.ID) error {
	switch f.State {
	case StatePreferencesSet, StateRoomSelected, StatePaymentFailed:
	default:
		return &InvalidTransitionError{From: f.State, Op: "select room"}
	}
	if !view.Purchasable {
		return FieldErrors{"plan_id": "room has no pricing available"}
	}

	for _, quote := range view.Quotes {
		if quote.PlanID == planID {
			f.RoomID = view.Room.ID
			f.PlanID = planID
			f.QuotedAmount = quote.EffectivePrice
			f.State = StateRoomSelected
			return nil
		}
	}
	return FieldErrors{"plan_id": "plan does not belong to the selected room"}
}

// SubmitProfile captures resident details. On validation failure the flow
// stays where it is so the caller can re-present every failing field.
func (f *Flow) SubmitProfile(resident bookingdomain.ResidentDetails, now time.Time) error {
	switch f.State {
	case StateRoomSelected, StateProfileSubmitted, StatePaymentFailed:
	default:
		return &InvalidTransitionError{From: f.State, Op: "submit profile"}
	}
	if errs := ValidateResidentDetails(resident, now); errs != nil {
		return errs
	}

	f.Resident = &resident
	f.State = StateProfileSubmitted
	return nil
}

// InitiatePayment binds a freshly created gateway order to the flow. A
// retry after failure must come through here again with a new order; stale
// orders are never reused.
func (f *Flow) InitiatePayment(gatewayOrderID string, amount int64) error {
	if f.State != StateProfileSubmitted {
		return &InvalidTransitionError{From: f.State, Op: "initiate payment"}
	}

	f.GatewayOrderID = gatewayOrderID
	f.QuotedAmount = amount
	f.LastFailure = ""
	f.State = StatePaymentInitiated
	return nil
}

// Confirm marks the flow terminal after checkout has verified and
// persisted the booking.
func (f *Flow) Confirm() error {
	if f.State != StatePaymentInitiated {
		return &InvalidTransitionError{From: f.State, Op: "confirm"}
	}
	f.State = StateConfirmed
	return nil
}

// Fail records a gateway failure or verification mismatch. Room, plan and
// resident details are retained so the student need not re-enter them.
// Gateway timeouts are not failures: the flow stays in PaymentInitiated so
// a later verify can still land.
func (f *Flow) Fail(reason string) error {
	if f.State != StatePaymentInitiated {
		return &InvalidTransitionError{From: f.State, Op: "fail payment"}
	}
	f.LastFailure = reason
	f.GatewayOrderID = ""
	f.State = StatePaymentFailed
	return nil
}
