package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Sabyy027/hostel-core/internal/booking/domain"
	"github.com/Sabyy027/hostel-core/internal/booking/repository"
	pkgdb "github.com/Sabyy027/hostel-core/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_booking_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Booking{}))

	svc := NewService(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
	return svc, db
}

func newBooking(id, studentID snowflake.ID, status domain.Status) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		StudentID: studentID,
		RoomID:    snowflake.ID(10),
		PlanID:    snowflake.ID(20),
		Amount:    45000,
		Currency:  "INR",
		Status:    status,
		Resident: domain.ResidentDetails{
			FullName:    "Asha Rao",
			DOB:         time.Date(2004, 6, 1, 0, 0, 0, 0, time.UTC),
			Gender:      "female",
			Mobile:      "9876543210",
			Street:      "12 MG Road",
			City:        "Bengaluru",
			State:       "Karnataka",
			Pincode:     "560001",
			CheckInDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestMyBookingNilWhenNone(t *testing.T) {
	svc, _ := newTestService(t)

	booking, err := svc.MyBooking(context.Background(), snowflake.ID(101))
	require.NoError(t, err)
	assert.Nil(t, booking)
}

func TestMyBookingReturnsActive(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	studentID := snowflake.ID(101)

	require.NoError(t, svc.Insert(ctx, db, newBooking(1, studentID, domain.StatusConfirmed)))

	booking, err := svc.MyBooking(ctx, studentID)
	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, snowflake.ID(1), booking.ID)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)

	// Another student's gate is unaffected.
	other, err := svc.MyBooking(ctx, snowflake.ID(202))
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestInsertSecondActiveBookingHitsUniqueIndex(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	studentID := snowflake.ID(101)

	// Mirror the migration's partial unique index on active bookings.
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX idx_bookings_one_active_per_student
		 ON bookings (student_id) WHERE status IN ('Pending', 'Confirmed')`,
	).Error)

	require.NoError(t, svc.Insert(ctx, db, newBooking(1, studentID, domain.StatusConfirmed)))

	err := svc.Insert(ctx, db, newBooking(2, studentID, domain.StatusPending))
	require.Error(t, err)
	assert.True(t, pkgdb.IsDuplicateKeyErr(err), "second active booking must surface as a duplicate key")

	// A different student is outside the index row.
	require.NoError(t, svc.Insert(ctx, db, newBooking(3, snowflake.ID(202), domain.StatusConfirmed)))
}

func TestAttachImageRef(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Insert(ctx, db, newBooking(1, snowflake.ID(101), domain.StatusConfirmed)))

	require.NoError(t, svc.AttachImageRef(ctx, snowflake.ID(1), "images/abc.png"))

	stored, err := svc.Find(ctx, db, snowflake.ID(1))
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.ImageRef)
	assert.Equal(t, "images/abc.png", *stored.ImageRef)
}

func TestAttachImageRefUnknownBooking(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.AttachImageRef(context.Background(), snowflake.ID(999), "images/abc.png")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}
