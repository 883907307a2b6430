package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking_not_found")

type Repository interface {
	// ActiveForStudent returns the student's Pending or Confirmed booking,
	// or nil. This is the "hasBooking" gate.
	ActiveForStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) (*Booking, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Booking, error)
	Insert(ctx context.Context, db *gorm.DB, booking *Booking) error
	SetImageRef(ctx context.Context, db *gorm.DB, id snowflake.ID, imageRef string) error
}
