package bookingflow

import (
	"regexp"
	"strings"
	"time"

	bookingdomain "github.com/Sabyy027/hostel-core/internal/booking/domain"
	catalogdomain "github.com/Sabyy027/hostel-core/internal/catalog/domain"
)

var (
	mobilePattern  = regexp.MustCompile(`^[0-9]{10}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// ValidatePreferences requires both AC type and sharing before the catalog
// can be listed.
func ValidatePreferences(prefs catalogdomain.Preferences) FieldErrors {
	errs := FieldErrors{}
	switch prefs.ACType {
	case catalogdomain.ACTypeAC, catalogdomain.ACTypeNonAC:
	case "":
		errs["ac_type"] = "AC type is required"
	default:
		errs["ac_type"] = "AC type must be AC or Non-AC"
	}
	if prefs.Sharing == 0 {
		errs["sharing"] = "sharing is required"
	} else if prefs.Sharing < 1 || prefs.Sharing > 6 {
		errs["sharing"] = "sharing must be between 1 and 6"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateResidentDetails checks every mandatory field and reports all
// failures together. DOB must be in the past; check-in must be today or
// later, compared by calendar day in the details' own location.
func ValidateResidentDetails(r bookingdomain.ResidentDetails, now time.Time) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(r.FullName) == "" {
		errs["full_name"] = "full name is required"
	}
	if r.DOB.IsZero() {
		errs["dob"] = "date of birth is required"
	} else if !beforeDay(r.DOB, now) {
		errs["dob"] = "date of birth must be in the past"
	}
	switch strings.TrimSpace(r.Gender) {
	case "":
		errs["gender"] = "gender is required"
	}
	if strings.TrimSpace(r.Mobile) == "" {
		errs["mobile"] = "mobile number is required"
	} else if !mobilePattern.MatchString(strings.TrimSpace(r.Mobile)) {
		errs["mobile"] = "mobile number must be 10 digits"
	}
	if strings.TrimSpace(r.Street) == "" {
		errs["street"] = "street is required"
	}
	if strings.TrimSpace(r.City) == "" {
		errs["city"] = "city is required"
	}
	if strings.TrimSpace(r.State) == "" {
		errs["state"] = "state is required"
	}
	if strings.TrimSpace(r.Pincode) == "" {
		errs["pincode"] = "pincode is required"
	} else if !pincodePattern.MatchString(strings.TrimSpace(r.Pincode)) {
		errs["pincode"] = "pincode must be 6 digits"
	}
	if r.CheckInDate.IsZero() {
		errs["check_in_date"] = "check-in date is required"
	} else if beforeDay(r.CheckInDate, now) {
		errs["check_in_date"] = "check-in date must be today or later"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// beforeDay reports whether t falls on an earlier calendar day than ref.
func beforeDay(t, ref time.Time) bool {
	ty, tm, td := t.Date()
	ry, rm, rd := ref.Date()
	if ty != ry {
		return ty < ry
	}
	if tm != rm {
		return tm < rm
	}
	return td < rd
}
