package subjects

import (
	"context"
	"fmt"

	amenityservice "github.com/Sabyy027/hostel-core/internal/amenity/service"
	"github.com/Sabyy027/hostel-core/internal/checkout/domain"
	"github.com/Sabyy027/hostel-core/internal/clock"
	invoicedomain "github.com/Sabyy027/hostel-core/internal/invoice/domain"
	invoiceservice "github.com/Sabyy027/hostel-core/internal/invoice/service"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AmenityParams struct {
	fx.In

	Log        *zap.Logger
	Clock      clock.Clock
	AmenitySvc *amenityservice.Service
	InvoiceSvc *invoiceservice.Service
}

// Amenity purchases an ancillary service: confirm issues a paid invoice
// and writes the activation record.
type Amenity struct {
	log        *zap.Logger
	clock      clock.Clock
	amenitySvc *amenityservice.Service
	invoiceSvc *invoiceservice.Service
}

func NewAmenity(p AmenityParams) *Amenity {
	return &Amenity{
		log:        p.Log.Named("checkout.subject.amenity"),
		clock:      p.Clock,
		amenitySvc: p.AmenitySvc,
		invoiceSvc: p.InvoiceSvc,
	}
}

func (s *Amenity) Type() domain.SubjectType { return domain.SubjectAmenity }

func (s *Amenity) Quote(ctx context.Context, db *gorm.DB, req domain.QuoteRequest) (*domain.Quote, error) {
	amenity, err := s.amenitySvc.FindByID(ctx, db, req.TargetID)
	if err != nil {
		return nil, err
	}
	if amenity == nil || !amenity.Active {
		return nil, fmt.Errorf("%w: amenity not available", domain.ErrConflict)
	}
	return &domain.Quote{Amount: amenity.Price, Currency: amenity.Currency}, nil
}

// AlreadySatisfied is always false for amenities: repeat purchases are
// legitimate, so only order-level idempotency applies.
func (s *Amenity) AlreadySatisfied(context.Context, *gorm.DB, domain.ConfirmRequest) (*domain.Confirmation, bool, error) {
	return nil, false, nil
}

func (s *Amenity) Confirm(ctx context.Context, tx *gorm.DB, order *domain.Order, req domain.ConfirmRequest) (*domain.Confirmation, error) {
	amenity, err := s.amenitySvc.FindByID(ctx, tx, order.TargetID)
	if err != nil {
		return nil, err
	}
	if amenity == nil || !amenity.Active {
		return nil, fmt.Errorf("%w: amenity not available", domain.ErrConflict)
	}

	invoice, err := s.invoiceSvc.Issue(ctx, tx, req.StudentID, nil, order.Currency, invoicedomain.StatusPaid, []invoicedomain.Item{
		{Description: amenity.Name, Amount: order.Amount},
	})
	if err != nil {
		return nil, err
	}

	activation, err := s.amenitySvc.Activate(ctx, tx, req.StudentID, amenity.ID, &invoice.ID, s.clock.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &domain.Confirmation{
		Subject:  domain.SubjectAmenity,
		RecordID: activation.ID,
		Record:   activation,
	}, nil
}

func (s *Amenity) Lookup(ctx context.Context, db *gorm.DB, recordID snowflake.ID) (*domain.Confirmation, error) {
	activation, err := s.amenitySvc.FindActivation(ctx, db, recordID)
	if err != nil {
		return nil, err
	}
	if activation == nil {
		return nil, domain.ErrOrderNotFound
	}
	return &domain.Confirmation{
		Subject:  domain.SubjectAmenity,
		RecordID: activation.ID,
		Record:   activation,
	}, nil
}
