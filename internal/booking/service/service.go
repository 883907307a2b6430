package service

import (
	"context"

	"github.com/Sabyy027/hostel-core/internal/booking/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func NewService(p Params) *Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("booking.service"),
		repo: p.Repo,
	}
}

// MyBooking returns the student's active booking, or nil when the student
// has none. Callers use a non-nil result as the AlreadyBooked gate.
func (s *Service) MyBooking(ctx context.Context, studentID snowflake.ID) (*domain.Booking, error) {
	return s.repo.ActiveForStudent(ctx, s.db, studentID)
}

// ActiveForStudent is the same gate against an explicit handle, used inside
// checkout's confirm transaction.
func (s *Service) ActiveForStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) (*domain.Booking, error) {
	return s.repo.ActiveForStudent(ctx, db, studentID)
}

// Find returns a booking by id, or nil.
func (s *Service) Find(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Booking, error) {
	return s.repo.FindByID(ctx, db, id)
}

// Insert persists a booking within the caller's transaction.
func (s *Service) Insert(ctx context.Context, db *gorm.DB, booking *domain.Booking) error {
	return s.repo.Insert(ctx, db, booking)
}

// AttachImageRef records the stored profile image on the booking. This is a
// best-effort side channel; callers log failures instead of propagating them.
func (s *Service) AttachImageRef(ctx context.Context, bookingID snowflake.ID, imageRef string) error {
	return s.repo.SetImageRef(ctx, s.db, bookingID, imageRef)
}
