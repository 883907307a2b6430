package subjects

import (
	"context"
	"fmt"

	"github.com/Sabyy027/hostel-core/internal/checkout/domain"
	"github.com/Sabyy027/hostel-core/internal/clock"
	invoicedomain "github.com/Sabyy027/hostel-core/internal/invoice/domain"
	invoiceservice "github.com/Sabyy027/hostel-core/internal/invoice/service"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InvoiceDueParams struct {
	fx.In

	Log        *zap.Logger
	Clock      clock.Clock
	InvoiceSvc *invoiceservice.Service
}

// InvoiceDue settles an outstanding invoice: the amount is the invoice
// total and confirm flips Pending to Paid rather than creating anything.
type InvoiceDue struct {
	log        *zap.Logger
	clock      clock.Clock
	invoiceSvc *invoiceservice.Service
}

func NewInvoiceDue(p InvoiceDueParams) *InvoiceDue {
	return &InvoiceDue{
		log:        p.Log.Named("checkout.subject.invoice"),
		clock:      p.Clock,
		invoiceSvc: p.InvoiceSvc,
	}
}

func (s *InvoiceDue) Type() domain.SubjectType { return domain.SubjectInvoiceDue }

func (s *InvoiceDue) Quote(ctx context.Context, db *gorm.DB, req domain.QuoteRequest) (*domain.Quote, error) {
	invoice, err := s.load(ctx, db, req.TargetID, req.StudentID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == invoicedomain.StatusPaid {
		return nil, fmt.Errorf("%w: invoice already paid", domain.ErrConflict)
	}
	return &domain.Quote{Amount: invoice.Total, Currency: invoice.Currency}, nil
}

func (s *InvoiceDue) AlreadySatisfied(ctx context.Context, db *gorm.DB, req domain.ConfirmRequest) (*domain.Confirmation, bool, error) {
	invoice, err := s.load(ctx, db, req.TargetID, req.StudentID)
	if err != nil {
		return nil, false, err
	}
	if invoice.Status != invoicedomain.StatusPaid {
		return nil, false, nil
	}
	return s.confirmation(invoice), true, nil
}

func (s *InvoiceDue) Confirm(ctx context.Context, tx *gorm.DB, order *domain.Order, req domain.ConfirmRequest) (*domain.Confirmation, error) {
	flipped, err := s.invoiceSvc.MarkPaid(ctx, tx, order.TargetID, s.clock.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !flipped {
		return nil, fmt.Errorf("%w: invoice already paid", domain.ErrConflict)
	}

	invoice, err := s.invoiceSvc.FindByID(ctx, tx, order.TargetID)
	if err != nil {
		return nil, err
	}
	return s.confirmation(invoice), nil
}

func (s *InvoiceDue) Lookup(ctx context.Context, db *gorm.DB, recordID snowflake.ID) (*domain.Confirmation, error) {
	invoice, err := s.invoiceSvc.FindByID(ctx, db, recordID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrOrderNotFound
	}
	return s.confirmation(invoice), nil
}

func (s *InvoiceDue) load(ctx context.Context, db *gorm.DB, invoiceID, studentID snowflake.ID) (*invoicedomain.Invoice, error) {
	invoice, err := s.invoiceSvc.FindByID(ctx, db, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.StudentID != studentID {
		return nil, fmt.Errorf("%w: invoice not found", domain.ErrConflict)
	}
	return invoice, nil
}

func (s *InvoiceDue) confirmation(invoice *invoicedomain.Invoice) *domain.Confirmation {
	return &domain.Confirmation{
		Subject:  domain.SubjectInvoiceDue,
		RecordID: invoice.ID,
		Record:   invoice,
	}
}
