package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Sabyy027/hostel-core/internal/clock"
	"github.com/Sabyy027/hostel-core/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func NewService(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// Issue appends a new invoice within the caller's transaction. The total is
// derived from the items, never supplied by the caller.
func (s *Service) Issue(ctx context.Context, db *gorm.DB, studentID snowflake.ID, bookingID *snowflake.ID, currency string, status domain.Status, items []domain.Item) (*domain.Invoice, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, item := range items {
		total += item.Amount
	}

	now := s.clock.Now().UTC()
	invoice := &domain.Invoice{
		ID:        s.genID.Generate(),
		StudentID: studentID,
		BookingID: bookingID,
		Items:     datatypes.JSON(payload),
		Total:     total,
		Currency:  currency,
		Status:    status,
		CreatedAt: now,
	}
	if status == domain.StatusPaid {
		invoice.PaidAt = &now
	}

	if err := s.repo.Insert(ctx, db, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *Service) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	return s.repo.FindByID(ctx, db, id)
}

// PendingDues lists the student's unpaid invoices.
func (s *Service) PendingDues(ctx context.Context, studentID snowflake.ID) ([]domain.Invoice, error) {
	return s.repo.ListPendingForStudent(ctx, s.db, studentID)
}

// MarkPaid flips a pending invoice to Paid. Returns false when the invoice
// was already Paid, which callers treat as an idempotent replay.
func (s *Service) MarkPaid(ctx context.Context, db *gorm.DB, id snowflake.ID, paidAt time.Time) (bool, error) {
	return s.repo.MarkPaid(ctx, db, id, paidAt)
}
