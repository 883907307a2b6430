package subjects

import (
	"context"
	"errors"
	"fmt"

	bookingdomain "github.com/Sabyy027/hostel-core/internal/booking/domain"
	bookingservice "github.com/Sabyy027/hostel-core/internal/booking/service"
	catalogdomain "github.com/Sabyy027/hostel-core/internal/catalog/domain"
	catalogservice "github.com/Sabyy027/hostel-core/internal/catalog/service"
	"github.com/Sabyy027/hostel-core/internal/checkout/domain"
	"github.com/Sabyy027/hostel-core/internal/clock"
	invoicedomain "github.com/Sabyy027/hostel-core/internal/invoice/domain"
	invoiceservice "github.com/Sabyy027/hostel-core/internal/invoice/service"
	pkgdb "github.com/Sabyy027/hostel-core/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RoomBookingParams struct {
	fx.In

	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	CatalogSvc *catalogservice.Service
	BookingSvc *bookingservice.Service
	InvoiceSvc *invoiceservice.Service
}

// RoomBooking is the checkout subject for claiming a room: it recomputes
// the discounted plan price, and on confirm claims the room, writes the
// booking and issues the paid invoice in one transaction.
type RoomBooking struct {
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	catalogSvc *catalogservice.Service
	bookingSvc *bookingservice.Service
	invoiceSvc *invoiceservice.Service
}

func NewRoomBooking(p RoomBookingParams) *RoomBooking {
	return &RoomBooking{
		log:        p.Log.Named("checkout.subject.room"),
		genID:      p.GenID,
		clock:      p.Clock,
		catalogSvc: p.CatalogSvc,
		bookingSvc: p.BookingSvc,
		invoiceSvc: p.InvoiceSvc,
	}
}

func (s *RoomBooking) Type() domain.SubjectType { return domain.SubjectRoomBooking }

func (s *RoomBooking) Quote(ctx context.Context, db *gorm.DB, req domain.QuoteRequest) (*domain.Quote, error) {
	if req.PlanID == nil {
		return nil, fmt.Errorf("%w: plan id required", domain.ErrConflict)
	}

	existing, err := s.bookingSvc.ActiveForStudent(ctx, db, req.StudentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyBooked
	}

	quote, _, err := s.catalogSvc.QuoteRoomPlan(ctx, db, req.TargetID, *req.PlanID)
	switch {
	case errors.Is(err, catalogdomain.ErrRoomOccupied):
		return nil, fmt.Errorf("%w: room occupied", domain.ErrConflict)
	case errors.Is(err, catalogdomain.ErrRoomNotFound):
		return nil, fmt.Errorf("%w: room no longer available", domain.ErrConflict)
	case errors.Is(err, catalogdomain.ErrPlanNotFound):
		return nil, fmt.Errorf("%w: plan no longer available", domain.ErrConflict)
	case err != nil:
		return nil, err
	}

	return &domain.Quote{Amount: quote.EffectivePrice}, nil
}

func (s *RoomBooking) AlreadySatisfied(ctx context.Context, db *gorm.DB, req domain.ConfirmRequest) (*domain.Confirmation, bool, error) {
	existing, err := s.bookingSvc.ActiveForStudent(ctx, db, req.StudentID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, nil
	}
	return s.confirmation(existing), true, nil
}

func (s *RoomBooking) Confirm(ctx context.Context, tx *gorm.DB, order *domain.Order, req domain.ConfirmRequest) (*domain.Confirmation, error) {
	if req.Resident == nil {
		return nil, errors.New("resident details required")
	}

	// Re-checked inside the transaction: two tabs can both pass the outer
	// gate.
	existing, err := s.bookingSvc.ActiveForStudent(ctx, tx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyBooked
	}

	won, err := s.catalogSvc.ClaimRoom(ctx, tx, order.TargetID)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, fmt.Errorf("%w: room occupied", domain.ErrConflict)
	}

	now := s.clock.Now().UTC()
	booking := &bookingdomain.Booking{
		ID:        s.genID.Generate(),
		StudentID: req.StudentID,
		RoomID:    order.TargetID,
		PlanID:    *order.PlanID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		Status:    bookingdomain.StatusConfirmed,
		Resident:  *req.Resident,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.bookingSvc.Insert(ctx, tx, booking); err != nil {
		// The partial unique index on active bookings is the last line of
		// defense when two confirms race past the gate re-check.
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, domain.ErrAlreadyBooked
		}
		return nil, err
	}

	_, err = s.invoiceSvc.Issue(ctx, tx, req.StudentID, &booking.ID, order.Currency, invoicedomain.StatusPaid, []invoicedomain.Item{
		{Description: fmt.Sprintf("Room booking %s", booking.RoomID), Amount: order.Amount},
	})
	if err != nil {
		return nil, err
	}

	return s.confirmation(booking), nil
}

func (s *RoomBooking) Lookup(ctx context.Context, db *gorm.DB, recordID snowflake.ID) (*domain.Confirmation, error) {
	booking, err := s.bookingSvc.Find(ctx, db, recordID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrOrderNotFound
	}
	return s.confirmation(booking), nil
}

func (s *RoomBooking) confirmation(booking *bookingdomain.Booking) *domain.Confirmation {
	return &domain.Confirmation{
		Subject:  domain.SubjectRoomBooking,
		RecordID: booking.ID,
		Record:   booking,
	}
}
