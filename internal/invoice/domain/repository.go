package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound = errors.New("invoice_not_found")
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	ListPendingForStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]Invoice, error)

	// MarkPaid flips Pending to Paid and reports whether this call did the
	// flip. A false return with no error means the invoice was already Paid.
	MarkPaid(ctx context.Context, db *gorm.DB, id snowflake.ID, paidAt time.Time) (bool, error)
}
