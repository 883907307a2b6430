package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sabyy027/hostel-core/internal/bookingflow"
	"github.com/stretchr/testify/assert"
)

func TestSubmitProfileRejectsMalformedDates(t *testing.T) {
	s := &Server{}
	r := newTestEngine(s)
	r.POST("/api/booking/profile", s.StudentRequired(), s.SubmitProfile)

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/booking/profile", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Student-Id", "42")
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("malformed dob", func(t *testing.T) {
		w := post(`{"full_name":"Asha","dob":"31-12-2004","check_in_date":"2026-09-01"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_dob")
	})

	t.Run("malformed check-in date", func(t *testing.T) {
		w := post(`{"full_name":"Asha","dob":"2004-12-31","check_in_date":"next week"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_check_in_date")
	})

	t.Run("both malformed reported together", func(t *testing.T) {
		w := post(`{"dob":"yesterday","check_in_date":"tomorrow"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_dob")
		assert.Contains(t, w.Body.String(), "invalid_check_in_date")
	})
}

func TestParseDateFieldFormats(t *testing.T) {
	errs := bookingflow.FieldErrors{}

	day := parseDateField("2026-09-01", "check_in_date", errs)
	assert.Equal(t, 2026, day.Year())
	assert.Empty(t, errs)

	stamp := parseDateField("2026-09-01T10:30:00Z", "check_in_date", errs)
	assert.Equal(t, 10, stamp.Hour())
	assert.Empty(t, errs)

	zero := parseDateField("", "dob", errs)
	assert.True(t, zero.IsZero())
	assert.Empty(t, errs, "empty values are left to the required-field check")
}
