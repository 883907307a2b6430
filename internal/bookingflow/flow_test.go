package bookingflow

import (
	"testing"
	"time"

	bookingdomain "github.com/Sabyy027/hostel-core/internal/booking/domain"
	catalogdomain "github.com/Sabyy027/hostel-core/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func validResident() bookingdomain.ResidentDetails {
	return bookingdomain.ResidentDetails{
		FullName:    "Asha Verma",
		DOB:         time.Date(2004, 7, 21, 0, 0, 0, 0, time.UTC),
		Gender:      "Female",
		Mobile:      "9876543210",
		Street:      "12 MG Road",
		City:        "Pune",
		State:       "Maharashtra",
		Pincode:     "411001",
		CheckInDate: now.AddDate(0, 0, 7),
	}
}

func sampleView(purchasable bool) catalogdomain.RoomView {
	view := catalogdomain.RoomView{
		Room: catalogdomain.Room{
			ID:       101,
			Number:   "A-101",
			Capacity: 2,
			ACType:   catalogdomain.ACTypeAC,
		},
		Purchasable: purchasable,
	}
	if purchasable {
		view.Quotes = []catalogdomain.PlanQuote{
			{PlanID: 201, Duration: 12, Unit: catalogdomain.PlanUnitMonths, BasePrice: 50000, EffectivePrice: 45000},
		}
	}
	return view
}

func advanceToRoomSelected(t *testing.T) *Flow {
	t.Helper()

	flow := New(false)
	require.NoError(t, flow.SetPreferences(catalogdomain.Preferences{
		ACType: catalogdomain.ACTypeAC, Sharing: 2,
	}))
	require.NoError(t, flow.SelectRoom(sampleView(true), 201))
	return flow
}

func TestEntryGateShortCircuitsToAlreadyBooked(t *testing.T) {
	flow := New(true)
	assert.Equal(t, StateAlreadyBooked, flow.State)

	err := flow.SetPreferences(catalogdomain.Preferences{ACType: catalogdomain.ACTypeAC, Sharing: 2})
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, StateAlreadyBooked, flow.State)
}

func TestSetPreferencesRequiresBothFields(t *testing.T) {
	flow := New(false)

	err := flow.SetPreferences(catalogdomain.Preferences{ACType: catalogdomain.ACTypeAC})
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "sharing")
	assert.NotContains(t, fieldErrs, "ac_type")
	assert.Equal(t, StateNoPreferences, flow.State)

	err = flow.SetPreferences(catalogdomain.Preferences{})
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "ac_type")
	assert.Contains(t, fieldErrs, "sharing")
}

func TestSelectRoomRejectsUnpurchasableRoom(t *testing.T) {
	flow := New(false)
	require.NoError(t, flow.SetPreferences(catalogdomain.Preferences{
		ACType: catalogdomain.ACTypeAC, Sharing: 2,
	}))

	err := flow.SelectRoom(sampleView(false), 201)
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "plan_id")
	assert.Equal(t, StatePreferencesSet, flow.State)
}

func TestSelectRoomRejectsForeignPlan(t *testing.T) {
	flow := New(false)
	require.NoError(t, flow.SetPreferences(catalogdomain.Preferences{
		ACType: catalogdomain.ACTypeAC, Sharing: 2,
	}))

	err := flow.SelectRoom(sampleView(true), 999)
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "plan_id")
}

func TestSubmitProfileRejectsFutureDOB(t *testing.T) {
	flow := advanceToRoomSelected(t)

	resident := validResident()
	resident.DOB = now.AddDate(0, 0, 1)

	err := flow.SubmitProfile(resident, now)
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "dob")
	assert.Equal(t, StateRoomSelected, flow.State)
}

func TestSubmitProfileCollectsAllFieldErrors(t *testing.T) {
	flow := advanceToRoomSelected(t)

	resident := validResident()
	resident.FullName = ""
	resident.Mobile = "12345"
	resident.Pincode = ""
	resident.CheckInDate = now.AddDate(0, 0, -1)

	err := flow.SubmitProfile(resident, now)
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "full_name")
	assert.Contains(t, fieldErrs, "mobile")
	assert.Contains(t, fieldErrs, "pincode")
	assert.Contains(t, fieldErrs, "check_in_date")
	assert.Equal(t, StateRoomSelected, flow.State)
}

func TestSubmitProfileAllowsCheckInToday(t *testing.T) {
	flow := advanceToRoomSelected(t)

	resident := validResident()
	resident.CheckInDate = now

	require.NoError(t, flow.SubmitProfile(resident, now))
	assert.Equal(t, StateProfileSubmitted, flow.State)
}

func TestHappyPathReachesConfirmed(t *testing.T) {
	flow := advanceToRoomSelected(t)
	require.NoError(t, flow.SubmitProfile(validResident(), now))
	require.NoError(t, flow.InitiatePayment("order_abc", 45000))
	assert.Equal(t, StatePaymentInitiated, flow.State)
	assert.Equal(t, int64(45000), flow.QuotedAmount)

	require.NoError(t, flow.Confirm())
	assert.Equal(t, StateConfirmed, flow.State)
}

func TestPaymentFailureRetainsSelectionAndMintsNewOrder(t *testing.T) {
	flow := advanceToRoomSelected(t)
	require.NoError(t, flow.SubmitProfile(validResident(), now))
	require.NoError(t, flow.InitiatePayment("order_first", 45000))

	require.NoError(t, flow.Fail("widget dismissed"))
	assert.Equal(t, StatePaymentFailed, flow.State)
	assert.Equal(t, int64(45000), flow.QuotedAmount)
	assert.NotZero(t, flow.RoomID)
	assert.NotZero(t, flow.PlanID)
	assert.NotNil(t, flow.Resident)
	assert.Empty(t, flow.GatewayOrderID)

	// Retry re-enters through profile submission and must carry a fresh
	// order id.
	require.NoError(t, flow.SubmitProfile(*flow.Resident, now))
	require.NoError(t, flow.InitiatePayment("order_second", 45000))
	assert.Equal(t, "order_second", flow.GatewayOrderID)
}

func TestTimeoutKeepsPaymentInitiated(t *testing.T) {
	flow := advanceToRoomSelected(t)
	require.NoError(t, flow.SubmitProfile(validResident(), now))
	require.NoError(t, flow.InitiatePayment("order_abc", 45000))

	// A gateway timeout is not a transition; a later verify can still land.
	assert.Equal(t, StatePaymentInitiated, flow.State)
	require.NoError(t, flow.Confirm())
	assert.Equal(t, StateConfirmed, flow.State)
}

func TestConfirmOnlyFromPaymentInitiated(t *testing.T) {
	flow := advanceToRoomSelected(t)
	err := flow.Confirm()
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
}
